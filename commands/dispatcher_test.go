package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"markestedt/clipbridge/platform"
)

func newTestDispatcher() (*Dispatcher, *memClipboard) {
	clip := &memClipboard{}
	return NewDispatcher(NewService(clip, platform.Unsupported{})), clip
}

func TestDispatcherCommands(t *testing.T) {
	d, _ := newTestDispatcher()

	want := []string{AutoCopySelection, ClearOtherSelections, CopyToClipboard, ReadClipboard}
	if got := d.Commands(); !slices.Equal(got, want) {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}
}

func TestDispatcherCopyThenRead(t *testing.T) {
	d, clip := newTestDispatcher()
	ctx := context.Background()

	resp := d.Invoke(ctx, Request{
		ID:      "req-1",
		Command: CopyToClipboard,
		Args:    json.RawMessage(`{"text":"héllo 👋"}`),
	})
	if !resp.OK || resp.ID != "req-1" || resp.Message != "Text copied: 7 characters" {
		t.Fatalf("copy response = %+v", resp)
	}
	if clip.text != "héllo 👋" {
		t.Fatalf("clipboard = %q", clip.text)
	}

	resp = d.Invoke(ctx, Request{Command: ReadClipboard})
	if !resp.OK || resp.Message != "héllo 👋" {
		t.Fatalf("read response = %+v", resp)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Fatalf("generated ID %q is not a uuid: %v", resp.ID, err)
	}
}

func TestDispatcherCopyEmptyTextThenRead(t *testing.T) {
	d, _ := newTestDispatcher()
	ctx := context.Background()

	resp := d.Invoke(ctx, Request{Command: CopyToClipboard, Args: json.RawMessage(`{"text":""}`)})
	if !resp.OK || resp.Message != "Text copied: 0 characters" {
		t.Fatalf("copy response = %+v", resp)
	}

	resp = d.Invoke(ctx, Request{Command: ReadClipboard})
	if resp.OK || resp.Error != "no text data in clipboard" {
		t.Fatalf("read response = %+v", resp)
	}
}

func TestDispatcherPlatformAsymmetry(t *testing.T) {
	d, _ := newTestDispatcher()
	ctx := context.Background()

	resp := d.Invoke(ctx, Request{Command: AutoCopySelection})
	if resp.OK || !strings.Contains(resp.Error, "unavailable") {
		t.Fatalf("auto copy response = %+v", resp)
	}

	resp = d.Invoke(ctx, Request{Command: ClearOtherSelections})
	if !resp.OK || !strings.Contains(resp.Message, "unavailable") {
		t.Fatalf("clear response = %+v", resp)
	}
}

func TestDispatcherRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"unknown", Request{Command: "paste_everywhere"}, "unknown command: paste_everywhere"},
		{"missing text", Request{Command: CopyToClipboard}, "missing argument: text"},
		{"null args", Request{Command: CopyToClipboard, Args: json.RawMessage(`null`)}, "missing argument: text"},
		{"malformed", Request{Command: CopyToClipboard, Args: json.RawMessage(`{"text":1}`)}, "invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, clip := newTestDispatcher()

			resp := d.Invoke(context.Background(), tt.req)
			if resp.OK {
				t.Fatalf("response OK for %+v", tt.req)
			}
			if !strings.HasPrefix(resp.Error, tt.want) {
				t.Fatalf("Error = %q, want prefix %q", resp.Error, tt.want)
			}
			if clip.sets != 0 {
				t.Fatalf("clipboard written on a rejected request")
			}
		})
	}
}

type exitRunner struct{ code int }

func (r exitRunner) Run(ctx context.Context, inv platform.Invocation) (platform.Result, error) {
	return platform.Result{ExitCode: r.code, Stderr: "window gone"}, nil
}

func TestDispatcherRequestLoggerReachesHelpers(t *testing.T) {
	var buf bytes.Buffer
	ctx := platform.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	inj := platform.NewXdotool(exitRunner{code: 1}, "xdotool", 0, 0)
	d := NewDispatcher(NewService(&memClipboard{}, inj))

	resp := d.Invoke(ctx, Request{ID: "req-9", Command: ClearOtherSelections})
	if !resp.OK || resp.Message != "Selections partially cleared" {
		t.Fatalf("response = %+v", resp)
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Escape broadcast finished with warnings") {
			if !strings.Contains(line, "request_id=req-9") || !strings.Contains(line, "command=clear_other_selections") {
				t.Fatalf("helper warning lost request attributes: %q", line)
			}
			return
		}
	}
	t.Fatalf("no helper warning logged: %q", buf.String())
}
