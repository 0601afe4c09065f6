package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"pcalab/pkg/core"
)

// Config describes one pcalab run.
type Config struct {
	// Input is a CSV path. Empty runs on the built-in classroom dataset.
	Input       string   `yaml:"input"`
	Features    []string `yaml:"features"`
	LabelColumn string   `yaml:"label_column"`
	Ignore      []string `yaml:"ignore"`
	Components  int      `yaml:"components"`
	MaxSweeps   int      `yaml:"max_sweeps"`
	Tolerance   float64  `yaml:"tolerance"` // relative Jacobi stopping threshold
	Output      Output   `yaml:"output"`
	Log         Log      `yaml:"log"`
}

// Output selects report format and optional chart files.
type Output struct {
	Format       string `yaml:"format"`
	Plot         string `yaml:"plot"`
	VariancePlot string `yaml:"variance_plot"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxSweeps: core.DefaultMaxSweeps,
		Tolerance: core.DefaultTolerance,
		Output:    Output{Format: "text"},
		Log:       Log{Level: "info"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. The component upper bound depends on the
// data and is checked by the pipeline.
func (c Config) Validate() error {
	if c.Components < 0 {
		return fmt.Errorf("components must be >= 0, got %d", c.Components)
	}
	if c.MaxSweeps < 1 {
		return fmt.Errorf("max_sweeps must be >= 1, got %d", c.MaxSweeps)
	}
	if !(c.Tolerance > 0 && c.Tolerance < 1) {
		return fmt.Errorf("tolerance must be in (0, 1), got %g", c.Tolerance)
	}
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("output format must be text or yaml, got %q", c.Output.Format)
	}
	if _, err := c.Log.ZerologLevel(); err != nil {
		return err
	}
	return nil
}

// ZerologLevel parses the configured level.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
