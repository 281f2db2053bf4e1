// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Database DatabaseConfig
	Table    TableConfig
	Generate GenerateConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 15s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig selects where the probability table text comes from.
type SourceConfig struct {
	// Kind is file, http or postgres (default: file)
	Kind string `env:"SOURCE_KIND" default:"file"`

	// Path is the table file for the file source (default: lotto_data.txt)
	Path string `env:"SOURCE_PATH" default:"lotto_data.txt"`

	// URL is fetched by the http source
	URL string `env:"SOURCE_URL"`

	// Timeout bounds one http fetch (default: 10s)
	Timeout time.Duration `env:"SOURCE_TIMEOUT" default:"10s"`

	// Watch reloads the file source when it changes on disk (default: true)
	Watch bool `env:"SOURCE_WATCH" default:"true"`

	// WatchDebounce is how long the file must be quiet before a reload (default: 500ms)
	WatchDebounce time.Duration `env:"SOURCE_WATCH_DEBOUNCE" default:"500ms"`

	// TableName is the probability_tables row name for the postgres source (default: default)
	TableName string `env:"SOURCE_TABLE_NAME" default:"default"`
}

// DatabaseConfig holds database connection settings.
// Only used when SOURCE_KIND is postgres.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// TableConfig controls how table text is parsed.
type TableConfig struct {
	// Indicator is the header token marking a probability column (default: 확률)
	Indicator string `env:"TABLE_PROBABILITY_INDICATOR" default:"확률"`

	// Sentinels are comma-separated cell values read as 0.00%
	Sentinels []string `env:"TABLE_MISSING_SENTINELS" default:"-,none,null,n/a,없음"`

	// PoolSize is the highest number drawn by random fill (default: 45)
	PoolSize int `env:"TABLE_POOL_SIZE" default:"45"`
}

// GenerateConfig controls combination assembly.
type GenerateConfig struct {
	// Order is grouped or sequential slot processing (default: grouped)
	Order string `env:"GENERATE_ORDER" default:"grouped"`

	// RandomSource is pcg or crypto (default: pcg)
	RandomSource string `env:"GENERATE_RANDOM_SOURCE" default:"pcg"`

	// Seed fixes the pcg source; 0 seeds from the runtime (default: 0)
	Seed int64 `env:"GENERATE_SEED" default:"0"`

	// SelectionFile holds band thresholds and slot presets (default: selection.yaml)
	SelectionFile string `env:"SELECTION_FILE" default:"selection.yaml"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// GenerateLimit is requests per minute for generate and reload endpoints (default: 30)
	GenerateLimit int `env:"RATE_LIMIT_GENERATE" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// CORSOrigins lists origins allowed to call /api (default: none)
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
