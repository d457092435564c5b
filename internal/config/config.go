package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string
	ViewsDir   string
	StaticDir  string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // Optional: enables mTLS when set

	// Dataset
	DatasetSource string // "csv" or "postgres"
	DatasetPath   string

	// Database, used when DatasetSource is "postgres"
	DatabaseURL string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	RedisURL      string // Session storage; empty keeps sessions in memory

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// OIDC, optional; the dashboard is public when OIDCIssuer is empty
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Features
	EnableTrendline    bool
	RateLimitPerMinute int

	// Site Branding
	SiteTitle    string // env: SITE_TITLE
	SiteTagline  string // env: SITE_TAGLINE
	SiteFooter   string // env: SITE_FOOTER
	SiteLogoURL  string // env: SITE_LOGO_URL, header image
	SiteLogoText string // env: SITE_LOGO_CAPTION

	// Path to dashboard.yaml
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; it
// never overrides variables that are already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		ViewsDir:           getEnv("VIEWS_DIR", "./views"),
		StaticDir:          getEnv("STATIC_DIR", "./static"),
		TLSEnabled:         getBoolEnv("TLS_ENABLED", false),
		TLSCertFile:        getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:         getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:          getEnv("TLS_CA_FILE", ""),
		DatasetSource:      strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),
		DatasetPath:        getEnv("DATASET_PATH", "anissabrinacleaned_data.csv"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/studentdash?sslmode=disable"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:           getEnv("REDIS_URL", ""),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		OIDCIssuer:         getEnv("OIDC_ISSUER", ""),
		OIDCClientID:       getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret:   getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:    getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		EnableTrendline:    getBoolEnv("ENABLE_TRENDLINE", true),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 120),

		SiteTitle:    getEnv("SITE_TITLE", "Impact of Extracurricular Activities on Academic Performance"),
		SiteTagline:  getEnv("SITE_TAGLINE", "GPA and well-being across student activities"),
		SiteFooter:   getEnv("SITE_FOOTER", "Student Activity Dashboard"),
		SiteLogoURL:  getEnv("SITE_LOGO_URL", "/static/img/students.svg"),
		SiteLogoText: getEnv("SITE_LOGO_CAPTION", "Students in Extracurricular Activities"),

		ConfigFile: getEnv("CONFIG_FILE", "dashboard.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AuthEnabled returns true when OIDC login guards the dashboard.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}
