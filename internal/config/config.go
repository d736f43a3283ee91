// Package config loads shell configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/glasspane/glasspane/internal/background"
)

// Config holds every tunable of the shell. Zero values are filled in with
// defaults at load time; Validate rejects combinations the compositor cannot
// run with.
type Config struct {
	// RefreshRate is the render loop frequency in frames per second.
	RefreshRate int `yaml:"refresh_rate"`

	// Zoom bounds the user-controllable viewport scale.
	Zoom ZoomConfig `yaml:"zoom"`

	// Workspaces controls the horizontal workspace strip.
	Workspaces WorkspaceConfig `yaml:"workspaces"`

	// Background selects the default renderer background.
	Background string `yaml:"background"`

	// SupervisorSocket overrides the supervisor socket path. Empty means
	// the runtime-directory default.
	SupervisorSocket string `yaml:"supervisor_socket"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

type ZoomConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type WorkspaceConfig struct {
	Count  int     `yaml:"count"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Gap    float64 `yaml:"gap"`
}

const (
	DefaultRefreshRate    = 60
	DefaultZoomMin        = 0.25
	DefaultZoomMax        = 4.0
	DefaultWorkspaceCount = 4
	DefaultWorkspaceW     = 1920.0
	DefaultWorkspaceH     = 1080.0
	DefaultWorkspaceGap   = 80.0
	DefaultLogLevel       = "info"
)

// Default returns a fully populated configuration.
func Default() *Config {
	return &Config{
		RefreshRate: DefaultRefreshRate,
		Zoom:        ZoomConfig{Min: DefaultZoomMin, Max: DefaultZoomMax},
		Workspaces: WorkspaceConfig{
			Count:  DefaultWorkspaceCount,
			Width:  DefaultWorkspaceW,
			Height: DefaultWorkspaceH,
			Gap:    DefaultWorkspaceGap,
		},
		Background: background.DefaultBackground,
		LogLevel:   DefaultLogLevel,
	}
}

// DefaultConfigPath returns ~/.config/glasspane/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "glasspane", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path. A missing file
// yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	if c.RefreshRate == 0 {
		c.RefreshRate = DefaultRefreshRate
	}
	if c.Zoom.Min == 0 {
		c.Zoom.Min = DefaultZoomMin
	}
	if c.Zoom.Max == 0 {
		c.Zoom.Max = DefaultZoomMax
	}
	if c.Workspaces.Count == 0 {
		c.Workspaces.Count = DefaultWorkspaceCount
	}
	if c.Workspaces.Width == 0 {
		c.Workspaces.Width = DefaultWorkspaceW
	}
	if c.Workspaces.Height == 0 {
		c.Workspaces.Height = DefaultWorkspaceH
	}
	if c.Background == "" {
		c.Background = background.DefaultBackground
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks for values the compositor cannot run with.
func (c *Config) Validate() error {
	if c.RefreshRate < 1 || c.RefreshRate > 240 {
		return fmt.Errorf("refresh_rate %d is out of range (1-240)", c.RefreshRate)
	}
	if c.Zoom.Min <= 0 {
		return fmt.Errorf("zoom.min must be positive, got %g", c.Zoom.Min)
	}
	if c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("zoom.max %g is below zoom.min %g", c.Zoom.Max, c.Zoom.Min)
	}
	if c.Workspaces.Count < 1 {
		return fmt.Errorf("workspaces.count must be at least 1, got %d", c.Workspaces.Count)
	}
	if c.Workspaces.Width <= 0 || c.Workspaces.Height <= 0 {
		return fmt.Errorf("workspace dimensions %gx%g must be positive",
			c.Workspaces.Width, c.Workspaces.Height)
	}
	if c.Workspaces.Gap < 0 {
		return fmt.Errorf("workspaces.gap must not be negative, got %g", c.Workspaces.Gap)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
