package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Invocation describes a helper process. Args and Env are passed as-is,
// nothing is interpreted by a shell.
type Invocation struct {
	Name string
	Args []string
	Env  []string // appended to the parent environment
}

// Result holds the outcome of a helper process that ran to completion
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the helper exited with status 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner launches helper processes
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs helpers with os/exec and waits for them to exit.
// No timeout is applied; a hung helper blocks the caller.
type ExecRunner struct{}

// NewRunner creates a runner that spawns real processes
func NewRunner() Runner {
	return ExecRunner{}
}

// Run starts the helper and captures stdout and stderr separately.
// An error is returned only if the process could not be launched or waited on;
// a non-zero exit is reported through Result.ExitCode.
func (ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to start %s: %w", inv.Name, err)
	}

	err := cmd.Wait()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("failed to wait for %s: %w", inv.Name, err)
	}

	return res, nil
}

// runChord runs a helper whose non-zero exit is a failure
func runChord(ctx context.Context, runner Runner, inv Invocation) error {
	res, err := runner.Run(ctx, inv)
	if err != nil {
		return err
	}
	logHelperOutput(Logger(ctx), inv.Name, res)

	if !res.Success() {
		return &HelperError{
			Interpreter: inv.Name,
			ExitCode:    res.ExitCode,
			Stderr:      res.Stderr,
		}
	}
	return nil
}

// runBroadcast runs a helper whose non-zero exit only means some targets were missed
func runBroadcast(ctx context.Context, runner Runner, inv Invocation) (Broadcast, error) {
	res, err := runner.Run(ctx, inv)
	if err != nil {
		return BroadcastPartial, err
	}
	log := Logger(ctx)
	logHelperOutput(log, inv.Name, res)

	if !res.Success() {
		log.Warn("Escape broadcast finished with warnings",
			"interpreter", inv.Name,
			"exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr))
		return BroadcastPartial, nil
	}
	return BroadcastComplete, nil
}

func logHelperOutput(log *slog.Logger, name string, res Result) {
	log.Debug("Helper exited",
		"interpreter", name,
		"exit_code", res.ExitCode,
		"stdout", strings.TrimSpace(res.Stdout))
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" && res.Success() {
		log.Warn("Helper wrote to stderr", "interpreter", name, "stderr", stderr)
	}
}
