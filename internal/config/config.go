// Package config loads ecslua run settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file picked up from the working directory when
// no --config flag is given.
const DefaultFile = "ecslua.yaml"

// Config holds the settings shared by the run and repl commands.
type Config struct {
	BaseDir string `yaml:"-"` // directory of the config file, for relative paths

	Script    string   `yaml:"script"`
	Scenes    []string `yaml:"scenes"`
	Phases    int      `yaml:"phases"`
	DeltaTime float64  `yaml:"delta_time"`
	Parallel  int      `yaml:"parallel"`
	LogLevel  string   `yaml:"log_level"` // debug, info, warn or error
	Watch     bool     `yaml:"watch"`
}

// Defaults returns a config with every default applied.
func Defaults() *Config {
	return &Config{
		Phases:    1,
		DeltaTime: 1.0 / 60.0,
		Parallel:  1,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults. An empty path loads DefaultFile when it
// exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg.BaseDir = filepath.Dir(absPath)
	cfg.resolvePaths()

	return cfg, nil
}

func (c *Config) resolvePaths() {
	if c.Script != "" && !filepath.IsAbs(c.Script) {
		c.Script = filepath.Join(c.BaseDir, c.Script)
	}

	for i, scene := range c.Scenes {
		if !filepath.IsAbs(scene) {
			c.Scenes[i] = filepath.Join(c.BaseDir, scene)
		}
	}
}

// Validate reports every problem at once. Call it after flag overrides.
func (c *Config) Validate() error {
	var errs []string

	if c.Phases < 1 {
		errs = append(errs, fmt.Sprintf("invalid phases: %d (must be at least 1)", c.Phases))
	}

	if c.DeltaTime < 0 {
		errs = append(errs, fmt.Sprintf("invalid delta_time: %g (must not be negative)", c.DeltaTime))
	}

	if c.Parallel < 1 {
		errs = append(errs, fmt.Sprintf("invalid parallel: %d (must be at least 1)", c.Parallel))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if c.Watch && c.Script == "" {
		errs = append(errs, "watch requires a script file")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ParseLevel maps a log level name onto slog.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}
