package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: "https://example.com/results.json"
  limit: 50
  offset_start: 0
  offset_end: 200
  offset_step: 50
  delay_seconds: 2
charts:
  top_races: 10
  top_teams: 5
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.API.BaseURL != "https://example.com/results.json" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Limit != 50 {
		t.Errorf("Limit = %d, want 50", cfg.API.Limit)
	}
	if cfg.Charts.TopRaces != 10 {
		t.Errorf("TopRaces = %d, want 10", cfg.Charts.TopRaces)
	}

	// Keys absent from the file keep their defaults
	if cfg.Standings.NameStride != 5 {
		t.Errorf("NameStride = %d, want default 5", cfg.Standings.NameStride)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [not: valid")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero limit", "api:\n  limit: -1\n"},
		{"negative step", "api:\n  offset_step: -100\n"},
		{"inverted offsets", "api:\n  offset_start: 500\n  offset_end: 100\n"},
		{"zero name stride", "standings:\n  name_stride: -5\n"},
		{"negative name offset", "standings:\n  name_offset: -1\n"},
		{"negative points offset", "standings:\n  points_offset: -2\n"},
		{"zero top races", "charts:\n  top_races: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestGetDefaultConfigIsValid(t *testing.T) {
	if err := GetDefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}
