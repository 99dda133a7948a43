// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/pkordes/eventboard/internal/domain"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all configuration values for the server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level. Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// Categories is the set offered by the form and accepted by the API.
	Categories []string `env:"CATEGORIES" envSeparator:","`

	// Storage selects where the event collection is persisted.
	Storage StorageConfig
}

// StorageConfig describes the key-value backend.
type StorageConfig struct {
	// Driver is one of file, memory, sqlite, postgres, redis.
	Driver string `env:"STORAGE_DRIVER" envDefault:"file"`

	// Key is the storage key the whole collection is written under.
	Key string `env:"STORAGE_KEY" envDefault:"events"`

	// DataDir is the directory used by the file driver.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/events.db"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	// RedisAddr is host:port of the Redis server. Required for the redis driver.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"eventboard:"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from vars instead of the process environment.
// Tests use it to get a fully controlled environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var missing []string
	switch cfg.Storage.Driver {
	case DriverFile, DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.Storage.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverRedis:
		if cfg.Storage.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q (want file, memory, sqlite, postgres or redis)", cfg.Storage.Driver)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// CategorySet returns the configured categories, normalized.
func (c Config) CategorySet() domain.Categories {
	return domain.ParseCategories(c.Categories)
}

// trimAll trims every entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
