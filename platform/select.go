package platform

import (
	"fmt"
	"time"

	"markestedt/clipbridge/config"
)

// LookPathFunc resolves an executable name, like exec.LookPath
type LookPathFunc func(file string) (string, error)

// Select picks the keystroke strategy for goos, or the one forced by cfg.Strategy
func Select(goos string, cfg config.PlatformConfig, runner Runner, lookPath LookPathFunc) (Injector, error) {
	settle := time.Duration(cfg.SettleDelayMs) * time.Millisecond
	wait := time.Duration(cfg.CopyWaitMs) * time.Millisecond

	strategy := cfg.Strategy
	if strategy == "" || strategy == config.StrategyAuto {
		strategy = autoStrategy(goos, cfg, lookPath)
	}

	switch strategy {
	case config.StrategyAppleScript:
		return NewAppleScript(runner, cfg.Osascript, settle, wait), nil
	case config.StrategyPowerShell:
		return NewPowerShell(runner, cfg.Powershell, settle), nil
	case config.StrategyXdotool:
		return NewXdotool(runner, cfg.Xdotool, settle, wait), nil
	case config.StrategyUnsupported:
		return Unsupported{}, nil
	default:
		return nil, fmt.Errorf("unknown platform strategy: %s", strategy)
	}
}

func autoStrategy(goos string, cfg config.PlatformConfig, lookPath LookPathFunc) string {
	switch goos {
	case "darwin":
		return config.StrategyAppleScript
	case "windows":
		return config.StrategyPowerShell
	case "linux":
		// xdotool is not part of a base install
		if lookPath != nil {
			if _, err := lookPath(cfg.Xdotool); err == nil {
				return config.StrategyXdotool
			}
		}
		return config.StrategyUnsupported
	default:
		return config.StrategyUnsupported
	}
}
