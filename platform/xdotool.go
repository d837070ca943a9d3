package platform

import (
	"context"
	"strconv"
	"time"
)

// Xdotool injects keys on X11 sessions
type Xdotool struct {
	runner      Runner
	path        string
	settleDelay time.Duration
	copyWait    time.Duration
}

// NewXdotool creates an xdotool based injector
func NewXdotool(runner Runner, path string, settleDelay, copyWait time.Duration) *Xdotool {
	return &Xdotool{
		runner:      runner,
		path:        path,
		settleDelay: settleDelay,
		copyWait:    copyWait,
	}
}

func (x *Xdotool) Name() string {
	return "xdotool"
}

// CopySelection sends Ctrl+C, framed by xdotool's own sleep commands
func (x *Xdotool) CopySelection(ctx context.Context) error {
	return runChord(ctx, x.runner, Invocation{
		Name: x.path,
		Args: []string{
			"sleep", seconds(x.settleDelay),
			"key", "--clearmodifiers", "ctrl+c",
			"sleep", seconds(x.copyWait),
		},
	})
}

// ClearSelections sends a single global Escape
func (x *Xdotool) ClearSelections(ctx context.Context) (Broadcast, error) {
	return runBroadcast(ctx, x.runner, Invocation{
		Name: x.path,
		Args: []string{"key", "--clearmodifiers", "Escape"},
	})
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
