package config

import (
	"os"
	"path/filepath"
	"testing"

	"studentdash/internal/analytics"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("ENABLE_TRENDLINE", "")
	t.Setenv("OIDC_ISSUER", "")

	cfg := Load()

	if cfg.DatasetSource != SourceCSV {
		t.Errorf("DatasetSource = %q, want %q", cfg.DatasetSource, SourceCSV)
	}
	if !cfg.EnableTrendline {
		t.Error("EnableTrendline should default to true")
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled should be false without OIDC_ISSUER")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "Postgres")
	t.Setenv("ENABLE_TRENDLINE", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("OIDC_ISSUER", "https://issuer.example.com")
	t.Setenv("ENV", "production")

	cfg := Load()

	if cfg.DatasetSource != SourcePostgres {
		t.Errorf("DatasetSource = %q, want %q", cfg.DatasetSource, SourcePostgres)
	}
	if cfg.EnableTrendline {
		t.Error("EnableTrendline should be false")
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", cfg.RateLimitPerMinute)
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled should be true")
	}
	if cfg.IsDev() {
		t.Error("IsDev should be false in production")
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		want     bool
	}{
		{"unset uses fallback", "", true, true},
		{"true", "true", false, true},
		{"numeric false", "0", true, false},
		{"garbage uses fallback", "maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL_ENV", tt.value)
			if got := getBoolEnv("TEST_BOOL_ENV", tt.fallback); got != tt.want {
				t.Errorf("getBoolEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadYAMLConfig_Missing(t *testing.T) {
	cfg, err := LoadYAMLConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if cfg.Filters.TopN != analytics.DefaultTopN {
		t.Errorf("TopN = %d, want %d", cfg.Filters.TopN, analytics.DefaultTopN)
	}
	if len(cfg.Filters.ExcludedDefaultActivities) != 1 || cfg.Filters.ExcludedDefaultActivities[0] != analytics.UnknownActivity {
		t.Errorf("ExcludedDefaultActivities = %v, want [unknown]", cfg.Filters.ExcludedDefaultActivities)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `
sections:
  correlation: "How GPA tracks well-being"
filters:
  excluded_default_activities: []
  top_n: 5
charts:
  width: 800
palettes:
  avg-gpa: ["#112233", "#445566"]
overrides:
  scatter:
    title: "Scatter"
    height: 600
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadYAMLConfig(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}

	if cfg.Sections.Correlation != "How GPA tracks well-being" {
		t.Errorf("Correlation heading = %q", cfg.Sections.Correlation)
	}
	if cfg.Sections.ActivityVsGPA == "" {
		t.Error("unset headings should get defaults")
	}
	if cfg.Filters.TopN != 5 {
		t.Errorf("TopN = %d, want 5", cfg.Filters.TopN)
	}
	if len(cfg.Filters.ExcludedDefaultActivities) != 0 {
		t.Errorf("explicit empty exclusion list should be kept, got %v", cfg.Filters.ExcludedDefaultActivities)
	}
	if got := cfg.Palette("avg-gpa"); len(got) != 2 {
		t.Errorf("Palette(avg-gpa) = %v", got)
	}
	if w, h := cfg.ChartSize("scatter"); w != 800 || h != 600 {
		t.Errorf("ChartSize(scatter) = %d x %d, want 800 x 600", w, h)
	}
	if w, h := cfg.ChartSize("avg-gpa"); w != 800 || h != 420 {
		t.Errorf("ChartSize(avg-gpa) = %d x %d, want 800 x 420", w, h)
	}
	if got := cfg.ChartTitle("scatter", "fallback"); got != "Scatter" {
		t.Errorf("ChartTitle(scatter) = %q", got)
	}
	if got := cfg.ChartTitle("gpa-box", "fallback"); got != "fallback" {
		t.Errorf("ChartTitle(gpa-box) = %q", got)
	}
}

func TestLoadYAMLConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte("filters: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadYAMLConfig(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
