package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/grid"
)

const (
	DefaultAlgorithm = algo.Default
	DefaultSpeed     = engine.DefaultSpeed
	DefaultSize      = 40
	DefaultMin       = 10
	DefaultMax       = 300
	DefaultData      = ".algoviz"
	DefaultTheme     = "default"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm string         `yaml:"algorithm"`
	Speed     int            `yaml:"speed"`
	Seed      int64          `yaml:"seed"`
	Theme     string         `yaml:"theme"`
	Data      string         `yaml:"data"`
	Sequence  SequenceConfig `yaml:"sequence"`
	Grid      GridConfig     `yaml:"grid"`
}

type SequenceConfig struct {
	Size int `yaml:"size"`
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`
}

type GridConfig struct {
	Rows  int     `yaml:"rows"`
	Cols  int     `yaml:"cols"`
	Walls float64 `yaml:"walls"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Speed:     DefaultSpeed,
		Theme:     DefaultTheme,
		Data:      DefaultData,
		Sequence: SequenceConfig{
			Size: DefaultSize,
			Min:  DefaultMin,
			Max:  DefaultMax,
		},
		Grid: GridConfig{
			Rows: grid.DefaultRows,
			Cols: grid.DefaultCols,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Speed < engine.MinSpeed || c.Speed > engine.MaxSpeed:
		return fmt.Errorf("%w: speed must be in [%d,%d], got %d", ErrInvalidConfig, engine.MinSpeed, engine.MaxSpeed, c.Speed)
	case c.Sequence.Size < 0:
		return fmt.Errorf("%w: sequence.size must be non-negative, got %d", ErrInvalidConfig, c.Sequence.Size)
	case c.Sequence.Min > c.Sequence.Max:
		return fmt.Errorf("%w: sequence.min %d exceeds sequence.max %d", ErrInvalidConfig, c.Sequence.Min, c.Sequence.Max)
	case c.Grid.Rows < 1 || c.Grid.Cols < 1:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Cols)
	case c.Grid.Walls < 0 || c.Grid.Walls >= 1:
		return fmt.Errorf("%w: grid.walls must be in [0,1), got %g", ErrInvalidConfig, c.Grid.Walls)
	}
	return nil
}

// Engine converts the file settings to engine settings.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Algorithm: c.Algorithm,
		Speed:     c.Speed,
		Size:      c.Sequence.Size,
		Min:       c.Sequence.Min,
		Max:       c.Sequence.Max,
		Rows:      c.Grid.Rows,
		Cols:      c.Grid.Cols,
		Walls:     c.Grid.Walls,
	}
}
