package platform

import (
	"context"
	"strings"
	"time"
)

const (
	envSendKeys = "CLIPBRIDGE_SENDKEYS"
	envSettleMs = "CLIPBRIDGE_SETTLE_MS"
)

// The key sequence and delay are read from the environment so the script text never changes.
var powerShellSendKeys = strings.Join([]string{
	"$ErrorActionPreference = 'Stop'",
	"Add-Type -AssemblyName System.Windows.Forms",
	"$settle = [int]$env:" + envSettleMs,
	"if ($settle -gt 0) { Start-Sleep -Milliseconds $settle }",
	"[System.Windows.Forms.SendKeys]::SendWait($env:" + envSendKeys + ")",
}, "\n")

// PowerShell sends keys through System.Windows.Forms.SendKeys (Windows)
type PowerShell struct {
	runner      Runner
	path        string
	settleDelay time.Duration
}

// NewPowerShell creates a SendKeys based injector
func NewPowerShell(runner Runner, path string, settleDelay time.Duration) *PowerShell {
	return &PowerShell{
		runner:      runner,
		path:        path,
		settleDelay: settleDelay,
	}
}

func (p *PowerShell) Name() string {
	return "powershell"
}

// CopySelection sends Ctrl+C
func (p *PowerShell) CopySelection(ctx context.Context) error {
	return runChord(ctx, p.runner, p.invocation("^c", p.settleDelay))
}

// ClearSelections sends a single global escape to the foreground window
func (p *PowerShell) ClearSelections(ctx context.Context) (Broadcast, error) {
	return runBroadcast(ctx, p.runner, p.invocation("{ESC}", 0))
}

func (p *PowerShell) invocation(keys string, settle time.Duration) Invocation {
	return Invocation{
		Name: p.path,
		Args: []string{"-NoProfile", "-NonInteractive", "-Command", powerShellSendKeys},
		Env: []string{
			envSendKeys + "=" + keys,
			envSettleMs + "=" + millis(settle),
		},
	}
}
