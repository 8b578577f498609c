package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Asset is a TOML action asset; empty uses the built-in asset.
	Asset         string `koanf:"asset"`
	Notifications bool   `koanf:"notifications"` // desktop notification on rebind outcome

	Rebind  RebindConfig  `koanf:"rebind"`
	Persist PersistConfig `koanf:"persist"`
	Layouts LayoutsConfig `koanf:"layouts"`
	Log     LogConfig     `koanf:"log"`
}

// RebindConfig holds interactive rebind settings.
type RebindConfig struct {
	Timeout            time.Duration `koanf:"timeout"`             // capture window (default: 5s)
	TickRate           int           `koanf:"tick_rate"`           // frames per second (1-240, default: 60)
	ExcludeMouse       bool          `koanf:"exclude_mouse"`       // ignore mouse controls everywhere
	ControllerExpected bool          `koanf:"controller_expected"` // ignore keyboard and mouse everywhere
	MatchDeviceClass   *bool         `koanf:"match_device_class"`  // refuse input from another device class (default: true)
	CancelPaths        []string      `koanf:"cancel_paths"`        // controls that abort a rebind
	ExcludePaths       []string      `koanf:"exclude_paths"`       // controls that can never be bound
}

// PersistConfig holds override persistence settings.
type PersistConfig struct {
	Key      string         `koanf:"key"`      // settings key (default: "rebinds")
	Debounce *time.Duration `koanf:"debounce"` // write delay, 0 writes immediately (default: 500ms)
	DB       string         `koanf:"db"`       // database path (default: XDG data dir)
}

// LayoutsConfig holds device layout normalization.
type LayoutsConfig struct {
	Secondary string   `koanf:"secondary"` // layout of secondary-class devices (default: "DualShockGamepad")
	Gamepad   string   `koanf:"gamepad"`   // generic gamepad layout (default: "Gamepad")
	Known     []string `koanf:"known"`     // gamepad layouts kept as-is (default: ["Gamepad"])
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `koanf:"format"` // "text" or "json" (default: "text")
	File   string `koanf:"file"`   // log file (default: XDG state dir)
}

var (
	defaultCancelPaths = []string{"<Keyboard>/escape", "<Mouse>/rightButton"}
	logLevels          = []string{"debug", "info", "warn", "error"}
)

// Load reads the config files in order of priority.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files; later files override earlier ones.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Asset = expandPath(cfg.Asset)
	cfg.Persist.DB = expandPath(cfg.Persist.DB)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/rebinder/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rebinder", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasAsset returns true if a custom action asset is configured.
func (c *Config) HasAsset() bool {
	return c.Asset != ""
}

// GetRebindConfig returns the rebind configuration with defaults applied.
func (c *Config) GetRebindConfig() RebindConfig {
	cfg := c.Rebind

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.TickRate <= 0 || cfg.TickRate > 240 {
		cfg.TickRate = 60
	}
	if cfg.MatchDeviceClass == nil {
		match := true
		cfg.MatchDeviceClass = &match
	}
	if cfg.CancelPaths == nil {
		cfg.CancelPaths = slices.Clone(defaultCancelPaths)
	}

	return cfg
}

// MatchesDeviceClass reports the effective match_device_class setting.
func (c *Config) MatchesDeviceClass() bool {
	return *c.GetRebindConfig().MatchDeviceClass
}

// GetPersistConfig returns the persistence configuration with defaults applied.
func (c *Config) GetPersistConfig() PersistConfig {
	cfg := c.Persist

	if cfg.Key == "" {
		cfg.Key = "rebinds"
	}
	if cfg.Debounce == nil || *cfg.Debounce < 0 {
		d := 500 * time.Millisecond
		cfg.Debounce = &d
	}

	return cfg
}

// GetLayoutsConfig returns the layout configuration with defaults applied.
func (c *Config) GetLayoutsConfig() LayoutsConfig {
	cfg := c.Layouts

	if cfg.Secondary == "" {
		cfg.Secondary = "DualShockGamepad"
	}
	if cfg.Gamepad == "" {
		cfg.Gamepad = "Gamepad"
	}
	if len(cfg.Known) == 0 {
		cfg.Known = []string{cfg.Gamepad}
	}

	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	cfg.Level = strings.ToLower(cfg.Level)
	if !slices.Contains(logLevels, cfg.Level) {
		cfg.Level = "info"
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.Format != "json" {
		cfg.Format = "text"
	}

	return cfg
}
