package platform

import (
	"context"
	"strconv"
	"time"
)

// The scripts are fixed; tunables reach them through argv.
var (
	appleCopyScript = []string{
		"on run argv",
		"set settleDelay to ((item 1 of argv) as integer) / 1000",
		"set copyWait to ((item 2 of argv) as integer) / 1000",
		`tell application "System Events"`,
		"delay settleDelay",
		`keystroke "c" using {command down}`,
		"delay copyWait",
		"end tell",
		`return "success"`,
		"end run",
	}

	// Apps that reject synthetic keystrokes are skipped by the try block.
	appleEscapeScript = []string{
		"on run argv",
		`tell application "System Events"`,
		"set visibleApps to every application process whose visible is true",
		"repeat with anApp in visibleApps",
		"try",
		"tell anApp",
		"if (count of windows) > 0 then",
		"keystroke (ASCII character 27)",
		"end if",
		"end tell",
		"end try",
		"end repeat",
		"end tell",
		"end run",
	}
)

// AppleScript drives System Events through osascript (macOS)
type AppleScript struct {
	runner      Runner
	path        string
	settleDelay time.Duration
	copyWait    time.Duration
}

// NewAppleScript creates an osascript based injector
func NewAppleScript(runner Runner, path string, settleDelay, copyWait time.Duration) *AppleScript {
	return &AppleScript{
		runner:      runner,
		path:        path,
		settleDelay: settleDelay,
		copyWait:    copyWait,
	}
}

func (a *AppleScript) Name() string {
	return "applescript"
}

// CopySelection sends Cmd+C
func (a *AppleScript) CopySelection(ctx context.Context) error {
	return runChord(ctx, a.runner, a.invocation(appleCopyScript,
		millis(a.settleDelay),
		millis(a.copyWait),
	))
}

// ClearSelections sends escape to every visible application with a window
func (a *AppleScript) ClearSelections(ctx context.Context) (Broadcast, error) {
	return runBroadcast(ctx, a.runner, a.invocation(appleEscapeScript))
}

func (a *AppleScript) invocation(script []string, argv ...string) Invocation {
	args := make([]string, 0, len(script)*2+len(argv))
	for _, line := range script {
		args = append(args, "-e", line)
	}
	args = append(args, argv...)
	return Invocation{Name: a.path, Args: args}
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
