package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Platform PlatformConfig `toml:"platform"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// PlatformConfig selects the keystroke strategy and the helper interpreters it runs
type PlatformConfig struct {
	Strategy      string `toml:"strategy"`
	Osascript     string `toml:"osascript"`
	Powershell    string `toml:"powershell"`
	Xdotool       string `toml:"xdotool"`
	SettleDelayMs int    `toml:"settle_delay_ms"`
	CopyWaitMs    int    `toml:"copy_wait_ms"`
}

// Strategy names accepted in [platform] strategy
const (
	StrategyAuto        = "auto"
	StrategyAppleScript = "applescript"
	StrategyPowerShell  = "powershell"
	StrategyXdotool     = "xdotool"
	StrategyUnsupported = "unsupported"
)

// Default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           "127.0.0.1:47821",
			AllowedOrigins: []string{"tauri://localhost", "http://tauri.localhost"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Platform: PlatformConfig{
			Strategy:      StrategyAuto,
			Osascript:     "osascript",
			Powershell:    "powershell",
			Xdotool:       "xdotool",
			SettleDelayMs: 10,
			CopyWaitMs:    20,
		},
	}
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}

	configDir := filepath.Join(dir, "clipbridge")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default TOML file
func Load() (*Config, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads the configuration from path.
// If the file doesn't exist, it creates it with default values
func LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated fields and delays
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}

	switch c.Platform.Strategy {
	case StrategyAuto, StrategyAppleScript, StrategyPowerShell, StrategyXdotool, StrategyUnsupported:
	default:
		return fmt.Errorf("unknown platform strategy: %s", c.Platform.Strategy)
	}

	if c.Platform.SettleDelayMs < 0 || c.Platform.CopyWaitMs < 0 {
		return fmt.Errorf("platform delays must not be negative")
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server addr is required")
	}

	return nil
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
