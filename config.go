package veneer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agiangrant/veneer/internal/log"
	"github.com/agiangrant/veneer/theme"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigFormat is returned for config files that are neither TOML
// nor YAML.
var ErrUnknownConfigFormat = errors.New("unknown config format")

// AppConfig configures the window, theme, view store and logging. It is read
// from veneer.toml or veneer.yaml.
type AppConfig struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Theme   string        `toml:"theme" yaml:"theme"` // builtin name or path
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Tasks   TasksConfig   `toml:"tasks" yaml:"tasks"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type WindowConfig struct {
	Title  string  `toml:"title" yaml:"title"`
	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`
}

type StoreConfig struct {
	// GraceFrames is how many frames an identity may go undrawn before its
	// animation state is dropped. 0 keeps state forever.
	GraceFrames int `toml:"grace_frames" yaml:"grace_frames"`
}

type TasksConfig struct {
	// Limit caps concurrent background loads.
	Limit int `toml:"limit" yaml:"limit"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Source bool   `toml:"source" yaml:"source"`
	File   string `toml:"file" yaml:"file"`
}

// DefaultAppConfig returns sensible defaults for a new application window.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Window:  WindowConfig{Title: "veneer", Width: 800, Height: 600},
		Theme:   "light",
		Store:   StoreConfig{GraceFrames: 1},
		Tasks:   TasksConfig{Limit: 4},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LogOptions converts the logging section for internal/log.
func (c AppConfig) LogOptions() log.Options {
	return log.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

// LoadTheme resolves the Theme setting: a builtin name, or a file path
// relative to dir.
func (c AppConfig) LoadTheme(dir string) (theme.Theme, error) {
	if t, ok := theme.Builtin(c.Theme); ok {
		return t, nil
	}
	path := c.Theme
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return theme.Load(path)
}

// Validate reports settings no app can start with.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height))
	}
	if c.Store.GraceFrames < 0 {
		errs = append(errs, fmt.Errorf("store.grace_frames must not be negative"))
	}
	if c.Tasks.Limit < 0 {
		errs = append(errs, fmt.Errorf("tasks.limit must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a config file over DefaultAppConfig. The format follows
// the extension: .toml, .yaml or .yml.
func LoadConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultAppConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return AppConfig{}, fmt.Errorf("%s: %w", path, ErrUnknownConfigFormat)
	}
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as TOML or YAML, by extension.
func SaveConfig(path string, cfg AppConfig) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(cfg)
		data = buf.Bytes()
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownConfigFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
