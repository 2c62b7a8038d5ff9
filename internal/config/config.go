package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort        int
	ShutdownTimeout time.Duration

	StoreBackend string
	DatabaseURL  string

	JWTSecret    string
	EnforceStock bool
}

// Load reads the configuration from the environment. Variables from a .env file in the
// working directory are applied first without overriding the ones already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	env := envReader{lookup: lookup}

	cfg := Config{
		AppEnv:          env.string("APP_ENV", "dev"),
		LogLevel:        env.string("LOG_LEVEL", "info"),
		HTTPPort:        env.int("HTTP_PORT", 5000),
		ShutdownTimeout: env.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		StoreBackend:    strings.ToLower(env.string("STORE_BACKEND", StorePostgres)),
		DatabaseURL:     env.string("DATABASE_URL", ""),
		JWTSecret:       env.string("JWT_SECRET", ""),
		EnforceStock:    env.bool("ENFORCE_STOCK", true),
	}

	if len(env.errs) > 0 {
		return Config{}, errors.Join(env.errs...)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.StoreBackend {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is empty"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND[%s] is not supported", c.StoreBackend))
	}

	if c.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET is empty"))
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT[%d] is out of range", c.HTTPPort))
	}

	return errors.Join(errs...)
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *envReader) string(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	return def
}

func (r *envReader) int(key string, def int) int {
	v := r.string(key, "")
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v := r.string(key, "")
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.string(key, "")
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return d
}
