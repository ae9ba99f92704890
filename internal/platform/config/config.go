package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = 3000
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "json"
	DefaultMaxOpenConns          = 25
	DefaultMaxIdleConns          = 10
	DefaultConnMaxLifetime       = 30 * time.Minute
	DefaultRateLimitRequests     = 120
	DefaultRateLimitWindow       = time.Minute
	DefaultRedisPoolSize         = 10
	DefaultRedisMinIdleConns     = 2
	DefaultRedisDialTimeout      = 5 * time.Second
	DefaultRedisReadWriteTimeout = 3 * time.Second
)

// Server captures process level configuration.
type Server struct {
	Addr      string
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	// TrustedProxies is the raw TRUSTED_PROXIES list of CIDRs or addresses
	// allowed to set forwarding headers.
	TrustedProxies string
}

type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig locates the PostgreSQL/PostGIS data source. Key is the
// access key sent as the connection password.
type DatabaseConfig struct {
	URL             string
	Key             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is loaded first when present;
// variables already set in the environment win. Every missing or malformed
// variable is reported in the returned error.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	var errs []error
	required := func(name string) string {
		v := os.Getenv(name)
		if v == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
		return v
	}
	integer := func(name string, def int) int {
		raw := os.Getenv(name)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw))
			return def
		}
		return v
	}
	duration := func(name string, def time.Duration) time.Duration {
		raw := os.Getenv(name)
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration, got %q", name, raw))
			return def
		}
		return v
	}
	boolean := func(name string) bool {
		raw := os.Getenv(name)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s must be a boolean, got %q", name, raw))
		}
		return v
	}

	cfg := Server{
		Addr:           ":" + strconv.Itoa(integer("PORT", DefaultPort)),
		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),
		Log: LogConfig{
			Level:  stringOr("LOG_LEVEL", DefaultLogLevel),
			Format: stringOr("LOG_FORMAT", DefaultLogFormat),
		},
		Database: DatabaseConfig{
			URL:             required("DATA_SOURCE_URL"),
			Key:             required("DATA_SOURCE_KEY"),
			MaxOpenConns:    integer("DB_MAX_OPEN_CONNS", DefaultMaxOpenConns),
			MaxIdleConns:    integer("DB_MAX_IDLE_CONNS", DefaultMaxIdleConns),
			ConnMaxLifetime: duration("DB_CONN_MAX_LIFETIME", DefaultConnMaxLifetime),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     DefaultRedisPoolSize,
			MinIdleConns: DefaultRedisMinIdleConns,
			DialTimeout:  DefaultRedisDialTimeout,
			ReadTimeout:  DefaultRedisReadWriteTimeout,
			WriteTimeout: DefaultRedisReadWriteTimeout,
		},
		RateLimit: RateLimitConfig{
			Enabled:  boolean("RATE_LIMIT_ENABLED"),
			Requests: integer("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),
			Window:   duration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow),
		},
	}
	if err := errors.Join(errs...); err != nil {
		return Server{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func stringOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
