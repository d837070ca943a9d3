package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"markestedt/clipbridge/commands"
	"markestedt/clipbridge/config"
	"markestedt/clipbridge/platform"
	"markestedt/clipbridge/web"
)

const shutdownTimeout = 5 * time.Second

// Bridge wires the OS capabilities to the command dispatcher
type Bridge struct {
	cfg        *config.Config
	injector   platform.Injector
	dispatcher *commands.Dispatcher
}

// NewBridge selects the platform strategy and builds the command table
func NewBridge(cfg *config.Config) (*Bridge, error) {
	injector, err := platform.Select(runtime.GOOS, cfg.Platform, platform.NewRunner(), exec.LookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to select keystroke strategy: %w", err)
	}

	svc := commands.NewService(platform.NewClipboard(), injector)

	return &Bridge{
		cfg:        cfg,
		injector:   injector,
		dispatcher: commands.NewDispatcher(svc),
	}, nil
}

// Serve runs the command server until ctx is cancelled
func (b *Bridge) Serve(ctx context.Context) error {
	server := web.NewServer(b.dispatcher, b.cfg.Server, b.injector.Name())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("command server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		slog.Info("Shutting down command server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down command server: %w", err)
		}
		return <-errCh
	}
}

// Invoke runs a single command and returns its response
func (b *Bridge) Invoke(ctx context.Context, command string, args any) (commands.Response, error) {
	req := commands.Request{Command: command}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return commands.Response{}, fmt.Errorf("failed to encode arguments: %w", err)
		}
		req.Args = raw
	}
	return b.dispatcher.Invoke(ctx, req), nil
}

// Commands lists the command names the bridge serves
func (b *Bridge) Commands() []string {
	return b.dispatcher.Commands()
}
