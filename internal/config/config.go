// Package config provides centralized configuration management for the site.
// It loads configuration from environment variables with defaults and
// validates all settings on startup so a bad deployment fails fast.
package config

import (
	"strconv"
	"time"
)

// Store drivers understood by core.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	FallbackLog FallbackLogConfig
	Site        SiteConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	Metrics     MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 3000)
	Port int `env:"PORT" envAlt:"SERVER_PORT" default:"3000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout bounds a single request via chi's Timeout middleware (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxFormBytes caps the size of a submitted form body (default: 1MiB)
	MaxFormBytes int64 `env:"SERVER_MAX_FORM_BYTES" default:"1048576"`
}

// StoreConfig selects and tunes the applications store.
type StoreConfig struct {
	// Driver is "sqlite" (embedded file, default) or "postgres"
	Driver string `env:"STORE_DRIVER" default:"sqlite"`

	// Path is the SQLite database file, created on first start
	Path string `env:"STORE_PATH" default:"data/applications.sqlite"`

	// URL is the PostgreSQL connection string, only read when Driver is postgres
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// BusyTimeout is how long SQLite waits on a locked database before failing (default: 5s)
	BusyTimeout time.Duration `env:"STORE_BUSY_TIMEOUT" default:"5s"`

	// MaxOpenConns caps the pool (default: 4)
	MaxOpenConns int `env:"STORE_MAX_OPEN_CONNS" default:"4"`
}

// FallbackLogConfig controls the plain-text mirror of accepted submissions.
type FallbackLogConfig struct {
	Enabled bool   `env:"FALLBACK_LOG_ENABLED" default:"true"`
	Path    string `env:"FALLBACK_LOG_PATH" default:"logs/application_logs.txt"`
}

// SiteConfig holds presentation settings for the public pages.
type SiteConfig struct {
	Name string `env:"SITE_NAME" default:"Studio Events"`

	// ThankYouPath is where successful submissions are redirected (default: /thank-you)
	ThankYouPath string `env:"SITE_THANK_YOU_PATH" default:"/thank-you"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins is a comma-separated CORS allow list; "*" allows any origin
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`

	// TrustedProxies lists proxy CIDRs whose X-Real-IP / X-Forwarded-For
	// headers are believed. Empty means the connection address is always used.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" default:"true"`
	Path    string `env:"METRICS_PATH" default:"/metrics"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
