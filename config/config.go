package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// Config is the runtime configuration read from a TOML file.
type Config struct {
	Runtime RuntimeConfig `toml:"runtime"`
	World   WorldConfig   `toml:"world"`
	Logging LoggingConfig `toml:"logging"`
}

// RuntimeConfig selects the game and drives the tick loop.
type RuntimeConfig struct {
	Game      string        `toml:"game"`      // "jump", "bird" or "snake"
	TickRate  time.Duration `toml:"tick_rate"` // fixed simulation step
	Seed      int64         `toml:"seed"`      // 0 picks a time-based seed
	Autopilot bool          `toml:"autopilot"` // snake only: steer with A*
	Workers   int           `toml:"workers"`   // collision pass goroutines, <=1 is serial
}

// WorldConfig sizes are in cells. Zero keeps the game's own world size
// and the full terminal.
type WorldConfig struct {
	Width        int `toml:"width"`
	Height       int `toml:"height"`
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`
}

// LoggingConfig controls the zap logger built by NewLogger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Path   string `toml:"path"`   // empty keeps logs off the terminal the game draws on
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Game:     "jump",
			TickRate: 100 * time.Millisecond,
			Workers:  1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate rejects values the runtime cannot work with.
func (c *Config) Validate() error {
	switch c.Runtime.Game {
	case "jump", "bird", "snake":
	default:
		return fmt.Errorf("unknown game %q", c.Runtime.Game)
	}
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %s", c.Runtime.TickRate)
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		return fmt.Errorf("world size must not be negative, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.ScreenWidth < 0 || c.World.ScreenHeight < 0 {
		return fmt.Errorf("screen size must not be negative, got %dx%d", c.World.ScreenWidth, c.World.ScreenHeight)
	}
	if c.Runtime.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Runtime.Workers)
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}
