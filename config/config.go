package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is fatal at startup: there is no fallback store.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required (PostgreSQL connection string)")

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

type AppConfig struct {
	Port              string
	Env               string
	LogLevel          string
	CORSOrigin        string
	ExposeStoreErrors bool
	RunMigrations     bool
}

type DBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8050")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("EXPOSE_STORE_ERRORS", true)
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	// The .env file is optional; the process environment always wins.
	_ = v.ReadInConfig()

	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if dbURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	cfg := &Config{
		App: AppConfig{
			Port:              v.GetString("APP_PORT"),
			Env:               v.GetString("APP_ENV"),
			LogLevel:          v.GetString("LOG_LEVEL"),
			CORSOrigin:        v.GetString("CORS_ALLOWED_ORIGIN"),
			ExposeStoreErrors: v.GetBool("EXPOSE_STORE_ERRORS"),
			RunMigrations:     v.GetBool("RUN_MIGRATIONS"),
		},
		DB: DBConfig{
			URL:             EnsureSSLMode(dbURL),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxIdleTime: durationOr(v.GetString("DB_CONN_MAX_IDLE_TIME"), 5*time.Minute),
			ConnMaxLifetime: durationOr(v.GetString("DB_CONN_MAX_LIFETIME"), 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			CacheTTL: durationOr(v.GetString("CATALOG_CACHE_TTL"), 5*time.Minute),
		},
	}

	return cfg, nil
}

// EnsureSSLMode appends sslmode=require when the connection string does not
// carry an sslmode option of its own.
func EnsureSSLMode(dbURL string) string {
	if strings.Contains(dbURL, "sslmode") {
		return dbURL
	}
	if strings.Contains(dbURL, "?") {
		return dbURL + "&sslmode=require"
	}
	return dbURL + "?sslmode=require"
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
