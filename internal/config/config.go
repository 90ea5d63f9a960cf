package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Model artifacts (manifest.yaml + vectorizer/classifier files)
	ModelDir string

	// Input
	MaxTextLength int

	// Alerting policy
	AlertThreshold int           // consecutive incorrect outcomes before an alert
	AlertCooldown  time.Duration // minimum interval between two alert emails
	WindowSize     int           // rolling outcome window capacity

	// Proxy correctness signal. With no ground truth at prediction time,
	// a confidence below LowConfidenceThreshold is counted as a candidate
	// incorrect outcome. This is an approximation, not a measurement; turn
	// it off with USE_CONFIDENCE_PROXY=false to rely on user feedback only.
	UseConfidenceProxy     bool
	LowConfidenceThreshold float64

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "starttls", or "tls"
	SMTPTimeout  time.Duration

	// Alert recipients (comma-separated in ALERT_TO)
	AlertRecipients []string

	// Periodic metrics digest email (0 disables)
	DigestInterval time.Duration

	// Prediction log (optional, empty disables)
	DatabaseURL string

	// Rate limiter storage (optional, empty uses in-memory)
	RedisURL     string
	RateLimitMax int

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Sentimeter"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),

		ModelDir:      getEnv("MODEL_DIR", "./model"),
		MaxTextLength: getEnvInt("MAX_TEXT_LENGTH", 5000),

		AlertThreshold: getEnvInt("ALERT_THRESHOLD", 3),
		AlertCooldown:  getEnvDuration("ALERT_COOLDOWN", time.Hour),
		WindowSize:     getEnvInt("OUTCOME_WINDOW_SIZE", 100),

		UseConfidenceProxy:     getEnvBool("USE_CONFIDENCE_PROXY", true),
		LowConfidenceThreshold: getEnvFloat("LOW_CONFIDENCE_THRESHOLD", 0.6),

		SMTPEnabled:  getEnvBool("SMTP_ENABLED", false),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Sentimeter"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),
		SMTPTimeout:  getEnvDuration("SMTP_TIMEOUT", 10*time.Second),

		AlertRecipients: splitList(getEnv("ALERT_TO", "")),
		DigestInterval:  getEnvDuration("DIGEST_INTERVAL", 0),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:     getEnv("REDIS_URL", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		SiteTitle:   getEnv("SITE_TITLE", "Sentimeter"),
		SiteTagline: getEnv("SITE_TAGLINE", "Sentiment analysis for short text"),
		SiteFooter:  getEnv("SITE_FOOTER", "Sentimeter - Sentiment analysis for short text"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured well enough to send mail.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsStoreEnabled returns true if the optional prediction log is configured.
func (c *Config) IsStoreEnabled() bool {
	return c.DatabaseURL != ""
}
