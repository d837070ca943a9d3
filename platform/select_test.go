package platform

import (
	"errors"
	"testing"

	"markestedt/clipbridge/config"
)

func found(string) (string, error) { return "/usr/bin/xdotool", nil }

func missing(string) (string, error) { return "", errors.New("not found") }

func TestSelect(t *testing.T) {
	tests := []struct {
		goos     string
		strategy string
		lookPath LookPathFunc
		want     string
	}{
		{"darwin", config.StrategyAuto, missing, "applescript"},
		{"windows", config.StrategyAuto, missing, "powershell"},
		{"linux", config.StrategyAuto, found, "xdotool"},
		{"linux", config.StrategyAuto, missing, "unsupported"},
		{"linux", "", nil, "unsupported"},
		{"freebsd", config.StrategyAuto, found, "unsupported"},
		{"darwin", config.StrategyUnsupported, found, "unsupported"},
		{"linux", config.StrategyPowerShell, missing, "powershell"},
		{"windows", config.StrategyXdotool, missing, "xdotool"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.strategy, func(t *testing.T) {
			cfg := config.Default().Platform
			cfg.Strategy = tt.strategy

			inj, err := Select(tt.goos, cfg, &fakeRunner{}, tt.lookPath)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if inj.Name() != tt.want {
				t.Fatalf("Select() = %s, want %s", inj.Name(), tt.want)
			}
		})
	}
}

func TestSelectRejectsUnknownStrategy(t *testing.T) {
	cfg := config.Default().Platform
	cfg.Strategy = "robotgo"

	if _, err := Select("darwin", cfg, &fakeRunner{}, missing); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
