package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline settings
type Config struct {
	API struct {
		BaseURL      string `yaml:"base_url"`
		Limit        int    `yaml:"limit"`
		OffsetStart  int    `yaml:"offset_start"`
		OffsetEnd    int    `yaml:"offset_end"`
		OffsetStep   int    `yaml:"offset_step"`
		DelaySeconds int    `yaml:"delay_seconds"`
	} `yaml:"api"`

	Standings struct {
		URL            string `yaml:"url"`
		NameSelector   string `yaml:"name_selector"`
		PointsSelector string `yaml:"points_selector"`
		NameStride     int    `yaml:"name_stride"`
		NameOffset     int    `yaml:"name_offset"`
		PointsStride   int    `yaml:"points_stride"`
		PointsOffset   int    `yaml:"points_offset"`
		UseBrowser     bool   `yaml:"use_browser"`
	} `yaml:"standings"`

	Charts struct {
		TopRaces      int               `yaml:"top_races"`
		TopTeams      int               `yaml:"top_teams"`
		TeamAllowlist []string          `yaml:"team_allowlist"`
		TeamColors    map[string]string `yaml:"team_colors"`
		OutputDir     string            `yaml:"output_dir"`
	} `yaml:"charts"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = "https://ergast.com/api/f1/results/1.json"
	cfg.API.Limit = 100
	cfg.API.OffsetStart = 0
	cfg.API.OffsetEnd = 1100
	cfg.API.OffsetStep = 100
	cfg.API.DelaySeconds = 1

	cfg.Standings.URL = "https://www.formula1.com/en/teams.html"
	cfg.Standings.NameSelector = ".f1-color--black"
	cfg.Standings.PointsSelector = ".f1-wide--s"
	cfg.Standings.NameStride = 5
	cfg.Standings.NameOffset = 0
	cfg.Standings.PointsStride = 2
	cfg.Standings.PointsOffset = 0
	cfg.Standings.UseBrowser = false

	cfg.Charts.TopRaces = 25
	cfg.Charts.TopTeams = 11
	cfg.Charts.TeamAllowlist = []string{"ferrari", "mclaren", "williams", "mercedes", "red_bull"}
	cfg.Charts.TeamColors = map[string]string{
		"ferrari":  "#dc0000",
		"mclaren":  "#ff8700",
		"williams": "#005aff",
		"mercedes": "#00d2be",
		"red_bull": "#0600ef",
	}
	cfg.Charts.OutputDir = "charts_out"

	return cfg
}

// Validate checks that the loaded values can drive the pipeline
func (c *Config) Validate() error {
	if c.API.Limit <= 0 {
		return fmt.Errorf("api.limit must be positive, got %d", c.API.Limit)
	}
	if c.API.OffsetStep <= 0 {
		return fmt.Errorf("api.offset_step must be positive, got %d", c.API.OffsetStep)
	}
	if c.API.OffsetEnd < c.API.OffsetStart {
		return fmt.Errorf("api.offset_end (%d) is before api.offset_start (%d)", c.API.OffsetEnd, c.API.OffsetStart)
	}
	if c.Standings.NameStride <= 0 || c.Standings.PointsStride <= 0 {
		return fmt.Errorf("standings strides must be positive, got name=%d points=%d",
			c.Standings.NameStride, c.Standings.PointsStride)
	}
	if c.Standings.NameOffset < 0 || c.Standings.PointsOffset < 0 {
		return fmt.Errorf("standings offsets must not be negative, got name=%d points=%d",
			c.Standings.NameOffset, c.Standings.PointsOffset)
	}
	if c.Charts.TopRaces <= 0 {
		return fmt.Errorf("charts.top_races must be positive, got %d", c.Charts.TopRaces)
	}
	if c.Charts.TopTeams <= 0 {
		return fmt.Errorf("charts.top_teams must be positive, got %d", c.Charts.TopTeams)
	}
	return nil
}
