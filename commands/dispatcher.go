package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"markestedt/clipbridge/platform"
)

// Command names understood by the dispatcher
const (
	CopyToClipboard      = "copy_to_clipboard"
	ReadClipboard        = "read_clipboard"
	AutoCopySelection    = "auto_copy_selection"
	ClearOtherSelections = "clear_other_selections"
)

// Request is a single command invocation from the GUI shell
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response carries either Message (OK) or Error, never both
type Response struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler runs one command with its raw JSON arguments
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Dispatcher routes requests to handlers by command name
type Dispatcher struct {
	handlers map[string]Handler
}

type copyArgs struct {
	Text *string `json:"text"`
}

// NewDispatcher builds the command table for svc
func NewDispatcher(svc *Service) *Dispatcher {
	return &Dispatcher{
		handlers: map[string]Handler{
			CopyToClipboard: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args copyArgs
				if err := decodeArgs(raw, &args); err != nil {
					return "", err
				}
				if args.Text == nil {
					return "", fmt.Errorf("missing argument: text")
				}
				return svc.CopyToClipboard(ctx, *args.Text)
			},
			ReadClipboard: func(ctx context.Context, _ json.RawMessage) (string, error) {
				return svc.ReadClipboard(ctx)
			},
			AutoCopySelection: func(ctx context.Context, _ json.RawMessage) (string, error) {
				return svc.AutoCopySelection(ctx)
			},
			ClearOtherSelections: func(ctx context.Context, _ json.RawMessage) (string, error) {
				return svc.ClearOtherSelections(ctx)
			},
		},
	}
}

// Commands returns the registered command names, sorted
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs req synchronously. Failures are returned in the Response, not as errors.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := Response{ID: req.ID, Command: req.Command}

	log := platform.Logger(ctx).With("request_id", req.ID, "command", req.Command)

	handler, ok := d.handlers[req.Command]
	if !ok {
		log.Warn("Unknown command")
		resp.Error = fmt.Sprintf("unknown command: %s", req.Command)
		return resp
	}

	start := time.Now()
	msg, err := handler(platform.WithLogger(ctx, log), req.Args)
	log.Debug("Command finished", "duration", time.Since(start), "ok", err == nil)

	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.OK = true
	resp.Message = msg
	return resp
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
