package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexgeom/pkg/grid"
)

// Config holds all hexgrid tool configuration
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Layout   LayoutConfig `yaml:"layout"`
	Flood    FloodConfig  `yaml:"flood"`
	Render   RenderConfig `yaml:"render"`
}

// LayoutConfig holds grid layout parameters
type LayoutConfig struct {
	Scale       float64 `yaml:"scale"`
	Orientation string  `yaml:"orientation"` // flat-top | pointy-top
}

// FloodConfig holds flood query limits.
// Deadline is a pointer so an explicit "0s" (no deadline) survives defaulting.
type FloodConfig struct {
	Deadline  *time.Duration `yaml:"deadline"`
	MaxSize   int            `yaml:"max_size"`
	MaxPasses int            `yaml:"max_passes"`
	SeedBox   [4]float64     `yaml:"seed_box"` // minX, minY, maxX, maxY
}

// RenderConfig holds PNG output settings
type RenderConfig struct {
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	Padding       int     `yaml:"padding"`
	Labels        bool    `yaml:"labels"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if _, err := cfg.BuildLayout(); err != nil {
		return nil, fmt.Errorf("invalid layout in %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("invalid log level in %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Set defaults if not provided
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Layout.Scale == 0 {
		c.Layout.Scale = 1
	}
	if c.Layout.Orientation == "" {
		c.Layout.Orientation = grid.FlatTop.String()
	}
	if c.Flood.Deadline == nil {
		d := grid.DefaultDeadline
		c.Flood.Deadline = &d
	}
	if c.Flood.SeedBox == [4]float64{} {
		b := grid.DefaultSeedBox
		c.Flood.SeedBox = [4]float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
	}
	if c.Render.PixelsPerUnit == 0 {
		c.Render.PixelsPerUnit = 50
	}
	if c.Render.Padding == 0 {
		c.Render.Padding = 5
	}
}

// BuildLayout turns the layout section into a grid.Layout
func (c *Config) BuildLayout() (grid.Layout, error) {
	o, err := grid.ParseOrientation(c.Layout.Orientation)
	if err != nil {
		return grid.Layout{}, err
	}
	return grid.New(grid.WithScale(c.Layout.Scale), grid.WithOrientation(o))
}

// FloodOptions turns the flood section into query options
func (c *Config) FloodOptions() []grid.QueryOption {
	b := c.Flood.SeedBox
	deadline := grid.DefaultDeadline
	if c.Flood.Deadline != nil {
		deadline = *c.Flood.Deadline
	}
	return []grid.QueryOption{
		grid.WithSeedBox(grid.NewBox(b[0], b[1], b[2], b[3])),
		grid.WithDeadline(deadline),
		grid.WithMaxSize(c.Flood.MaxSize),
		grid.WithMaxPasses(c.Flood.MaxPasses),
	}
}

// Level parses LogLevel for slog
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}
