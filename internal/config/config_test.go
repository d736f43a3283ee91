package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.RefreshRate != DefaultRefreshRate {
		t.Errorf("RefreshRate = %d, want %d", cfg.RefreshRate, DefaultRefreshRate)
	}
	if cfg.Zoom.Min != DefaultZoomMin || cfg.Zoom.Max != DefaultZoomMax {
		t.Errorf("Zoom = %+v, want defaults", cfg.Zoom)
	}
	if cfg.Workspaces.Count != DefaultWorkspaceCount {
		t.Errorf("Workspaces.Count = %d, want %d", cfg.Workspaces.Count, DefaultWorkspaceCount)
	}
	if cfg.Background != "aurora" {
		t.Errorf("Background = %q, want aurora", cfg.Background)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
refresh_rate: 30
workspaces:
  count: 6
background: slate
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.RefreshRate != 30 {
		t.Errorf("RefreshRate = %d, want 30", cfg.RefreshRate)
	}
	if cfg.Workspaces.Count != 6 {
		t.Errorf("Workspaces.Count = %d, want 6", cfg.Workspaces.Count)
	}
	if cfg.Background != "slate" {
		t.Errorf("Background = %q, want slate", cfg.Background)
	}
	// Untouched sections fall back to defaults.
	if cfg.Workspaces.Width != DefaultWorkspaceW {
		t.Errorf("Workspaces.Width = %g, want %g", cfg.Workspaces.Width, DefaultWorkspaceW)
	}
	if cfg.Zoom.Max != DefaultZoomMax {
		t.Errorf("Zoom.Max = %g, want %g", cfg.Zoom.Max, DefaultZoomMax)
	}
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("refresh_rate: [nope"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"refresh rate too high", func(c *Config) { c.RefreshRate = 500 }, true},
		{"refresh rate zero", func(c *Config) { c.RefreshRate = 0 }, true},
		{"zoom min negative", func(c *Config) { c.Zoom.Min = -1 }, true},
		{"zoom max below min", func(c *Config) { c.Zoom.Min = 2; c.Zoom.Max = 1 }, true},
		{"no workspaces", func(c *Config) { c.Workspaces.Count = 0 }, true},
		{"zero workspace width", func(c *Config) { c.Workspaces.Width = 0 }, true},
		{"negative gap", func(c *Config) { c.Workspaces.Gap = -10 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"single workspace no gap", func(c *Config) { c.Workspaces.Count = 1; c.Workspaces.Gap = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.RefreshRate = 120
	cfg.Background = "dusk"
	cfg.Workspaces.Gap = 40

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.RefreshRate != 120 || loaded.Background != "dusk" || loaded.Workspaces.Gap != 40 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
