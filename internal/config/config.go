package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Rate limit per client IP and minute
	RateLimit int

	// Input
	SampleDataPath string // Spreadsheet classified at startup when no upload exists yet
	RulesFile      string // Optional YAML rule registry
	MaxUploadMB    int

	// Run store
	RedisURL string        // Empty keeps runs in process memory
	RunTTL   time.Duration // How long a run stays available for export

	// Dashboard
	TopN int // Rows per table section

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// OIDC (optional, protects the dashboard when set)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "SEO 키워드 2x2 매트릭스 대시보드"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		RateLimit:        getEnvInt("RATE_LIMIT", 100),
		SampleDataPath:   getEnv("SAMPLE_DATA_PATH", "sample_data/sample.xlsx"),
		RulesFile:        getEnv("RULES_FILE", "rules.yaml"),
		MaxUploadMB:      getEnvInt("MAX_UPLOAD_MB", 20),
		RedisURL:         getEnv("REDIS_URL", ""),
		RunTTL:           getEnvDuration("RUN_TTL", time.Hour),
		TopN:             getEnvInt("TOP_N", 10),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		SiteTitle:   getEnv("SITE_TITLE", "SEO 키워드 2x2 매트릭스 대시보드"),
		SiteTagline: getEnv("SITE_TAGLINE", "네이버 키워드 도구 연관 키워드 분류"),
		SiteFooter:  getEnv("SITE_FOOTER", "keywordmatrix"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AuthEnabled returns true if OIDC login protects the dashboard.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// MaxUploadBytes returns the request body limit for uploads.
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB << 20
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}
