package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"studentdash/internal/analytics"
)

// YAMLConfig represents the structure of the dashboard.yaml file.
// Presentation settings that are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Sections  SectionsConfig         `yaml:"sections"`
	Filters   FiltersConfig          `yaml:"filters"`
	Charts    ChartsConfig           `yaml:"charts"`
	Palettes  map[string][]string    `yaml:"palettes"` // chart id -> hex colors
	Overrides map[string]ChartConfig `yaml:"overrides,omitempty"`
}

// SectionsConfig holds the headings of the dashboard sections.
type SectionsConfig struct {
	ActivityVsGPA        string `yaml:"activity_vs_gpa"`
	IntensityVsWellBeing string `yaml:"intensity_vs_well_being"`
	BestForWellBeing     string `yaml:"best_for_well_being"`
	Correlation          string `yaml:"correlation"`
}

// FiltersConfig controls the initial filter selection.
type FiltersConfig struct {
	ExcludedDefaultActivities []string `yaml:"excluded_default_activities"`
	TopN                      int      `yaml:"top_n"`
}

// ChartsConfig sets the default chart size in pixels.
type ChartsConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ChartConfig overrides settings for a single chart.
type ChartConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultYAMLConfig returns the settings used when no file is present.
func DefaultYAMLConfig() *YAMLConfig {
	cfg := &YAMLConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns the defaults without error if the file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return DefaultYAMLConfig(), nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *YAMLConfig) applyDefaults() {
	if c.Sections.ActivityVsGPA == "" {
		c.Sections.ActivityVsGPA = "Objective 1: Activity Type vs GPA"
	}
	if c.Sections.IntensityVsWellBeing == "" {
		c.Sections.IntensityVsWellBeing = "Objective 2: Intensity Level vs Wellbeing"
	}
	if c.Sections.BestForWellBeing == "" {
		c.Sections.BestForWellBeing = "Objective 3: Best Activities for Wellbeing"
	}
	if c.Sections.Correlation == "" {
		c.Sections.Correlation = "GPA vs Wellbeing Correlation"
	}
	// nil means unset; an explicit empty list keeps "unknown" selectable by default
	if c.Filters.ExcludedDefaultActivities == nil {
		c.Filters.ExcludedDefaultActivities = []string{analytics.UnknownActivity}
	}
	if c.Filters.TopN <= 0 {
		c.Filters.TopN = analytics.DefaultTopN
	}
	if c.Charts.Width <= 0 {
		c.Charts.Width = 640
	}
	if c.Charts.Height <= 0 {
		c.Charts.Height = 420
	}
}

// Palette returns the configured colors for a chart, or nil.
func (c *YAMLConfig) Palette(chartID string) []string {
	if c == nil || c.Palettes == nil {
		return nil
	}
	return c.Palettes[chartID]
}

// ChartSize returns the width and height for a chart.
func (c *YAMLConfig) ChartSize(chartID string) (int, int) {
	w, h := c.Charts.Width, c.Charts.Height
	if o, ok := c.Overrides[chartID]; ok {
		if o.Width > 0 {
			w = o.Width
		}
		if o.Height > 0 {
			h = o.Height
		}
	}
	return w, h
}

// ChartTitle returns the override title for a chart, or fallback.
func (c *YAMLConfig) ChartTitle(chartID, fallback string) string {
	if o, ok := c.Overrides[chartID]; ok && o.Title != "" {
		return o.Title
	}
	return fallback
}
