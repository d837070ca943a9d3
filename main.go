package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"markestedt/clipbridge/commands"
	"markestedt/clipbridge/config"
)

type options struct {
	configPath string
	logLevel   string
	addr       string
	stdin      bool

	cfg *config.Config
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "clipbridge",
		Short:         "Clipboard and keystroke backend for the desktop shell",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newServeCmd(opts), newInvokeCmd(opts, stdout, stderr), newCommandsCmd(opts, stdout))
	return root
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve commands to the GUI shell over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr != "" {
				opts.cfg.Server.Addr = opts.addr
			}

			bridge, err := NewBridge(opts.cfg)
			if err != nil {
				slog.Error("Failed to create bridge", "error", err)
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := bridge.Serve(ctx); err != nil {
				slog.Error("Bridge error", "error", err)
				return err
			}

			slog.Info("clipbridge stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Override the listen address")
	return cmd
}

func newInvokeCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke <command> [text]",
		Short: "Run a single command and print its result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, err := NewBridge(opts.cfg)
			if err != nil {
				return err
			}

			var cmdArgs any
			if args[0] == commands.CopyToClipboard {
				text, err := copyText(args[1:], opts.stdin, cmd.InOrStdin())
				if err != nil {
					return err
				}
				cmdArgs = map[string]string{"text": text}
			} else if len(args) > 1 {
				return fmt.Errorf("%s takes no text argument", args[0])
			}

			resp, err := bridge.Invoke(cmd.Context(), args[0], cmdArgs)
			if err != nil {
				return err
			}
			if !resp.OK {
				fmt.Fprintln(stderr, resp.Error)
				return fmt.Errorf("%s failed", args[0])
			}

			fmt.Fprintln(stdout, resp.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Read the text for copy_to_clipboard from standard input")
	return cmd
}

func newCommandsCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the available commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, err := NewBridge(opts.cfg)
			if err != nil {
				return err
			}
			for _, name := range bridge.Commands() {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
}

// load reads the configuration and installs the default logger
func (o *options) load(stderr io.Writer) error {
	var (
		cfg  *config.Config
		path = o.configPath
		err  error
	)
	if path == "" {
		cfg, path, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	setupLogging(stderr, cfg.Log.Format, level)
	slog.Debug("Configuration loaded", "path", path)

	o.cfg = cfg
	return nil
}

func setupLogging(w io.Writer, format string, level slog.Level) {
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

func copyText(args []string, fromStdin bool, in io.Reader) (string, error) {
	if fromStdin {
		if len(args) > 0 {
			return "", fmt.Errorf("pass text either as an argument or with --stdin")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("copy_to_clipboard needs a text argument or --stdin")
	}
	return args[0], nil
}
