package thicket

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunConfig configures the host window, the frame loop and logging. It is
// read from TOML by LoadConfig; missing keys keep their defaults.
type RunConfig struct {
	Window  WindowConfig  `toml:"window"`
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
}

// WindowConfig sizes and titles the host window.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

// LoopConfig tunes the game loop and its debug aids.
type LoopConfig struct {
	FixedStep     float64 `toml:"fixed_step"` // seconds between fixed updates
	TPS           int     `toml:"tps"`
	Debug         bool    `toml:"debug"`
	ShowFPS       bool    `toml:"show_fps"`
	ClearColor    string  `toml:"clear_color"` // colour name or #rrggbb[aa]
	ScreenshotDir string  `toml:"screenshot_dir"`
}

// LoggingConfig selects the zap logger level and encoding.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *RunConfig {
	return &RunConfig{
		Window: WindowConfig{
			Title:     "thicket",
			Width:     defaultViewWidth,
			Height:    defaultViewHeight,
			Resizable: true,
		},
		Loop: LoopConfig{
			FixedStep:     0.02,
			TPS:           60,
			ClearColor:    "black",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes TOML data over the defaults and validates it. name is
// used in error messages only.
func ParseConfig(data []byte, name string) (*RunConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *RunConfig) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Loop.FixedStep <= 0 {
		return fmt.Errorf("fixed_step %v must be positive", c.Loop.FixedStep)
	}
	if c.Loop.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.Loop.TPS)
	}
	if _, err := ParseColor(c.Loop.ClearColor); err != nil {
		return err
	}
	return nil
}

// NewLogger builds a zap logger: json production output, or a coloured
// console logger for development. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
