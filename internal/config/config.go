package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	SessionExpiry time.Duration
	BcryptCost    int
	CookieSecure  bool

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, optional: exports are streamed inline when S3Bucket is empty)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration

	// Goal decomposition
	AgentMode          string // "script" or "http"
	AgentScriptPath    string
	AgentInterpreters  []string
	AgentTimeout       time.Duration
	AgentMaxConcurrent int
	AgentURL           string
	AgentSigningKey    string
	PortiaAPIKey       string
}

const (
	AgentModeScript = "script"
	AgentModeHTTP   = "http"
)

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Dream-to-Task Agent"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:      envRequired("APP_URL"),
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/dreamtask.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		SessionExpiry: envDuration("SESSION_EXPIRY", 168*time.Hour), // 7 days, store and cookie alike
		BcryptCost:    envInt("BCRYPT_COST", 12),
		CookieSecure:  envBool("COOKIE_SECURE", envString("APP_ENV", "development") == "production"),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),

		// Goal decomposition
		AgentMode:          envString("AGENT_MODE", AgentModeScript),
		AgentScriptPath:    envString("AGENT_SCRIPT_PATH", "scripts/portia_agent.py"),
		AgentInterpreters:  envList("AGENT_INTERPRETERS", []string{"python3", "python", "py"}),
		AgentTimeout:       envDuration("AGENT_TIMEOUT", 60*time.Second),
		AgentMaxConcurrent: envInt("AGENT_MAX_CONCURRENT", 4),
		AgentURL:           envString("AGENT_URL", ""),
		AgentSigningKey:    envString("AGENT_SIGNING_KEY", ""),
		PortiaAPIKey:       envString("PORTIA_API_KEY", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.AgentMode == AgentModeHTTP && (cfg.AgentURL == "" || cfg.AgentSigningKey == "") {
		slog.Error("AGENT_MODE=http requires AGENT_URL and AGENT_SIGNING_KEY")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList reads a comma separated list, dropping empty items.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CloudLoggingEnabled reports whether the decomposer should enable remote telemetry.
func (c *Config) CloudLoggingEnabled() bool {
	return c.PortiaAPIKey != ""
}

func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:            c.AppName,
		AppEnv:             c.AppEnv,
		AppURL:             c.AppURL,
		Port:               c.Port,
		DBDriver:           c.DBDriver,
		SessionExpiry:      c.SessionExpiry,
		CookieSecure:       c.CookieSecure,
		EmailFrom:          c.EmailFrom,
		S3Region:           c.S3Region,
		S3Bucket:           c.S3Bucket,
		S3Endpoint:         c.S3Endpoint,
		AgentMode:          c.AgentMode,
		AgentScriptPath:    c.AgentScriptPath,
		AgentInterpreters:  c.AgentInterpreters,
		AgentTimeout:       c.AgentTimeout,
		AgentMaxConcurrent: c.AgentMaxConcurrent,
		AgentURL:           c.AgentURL,
	}
}
