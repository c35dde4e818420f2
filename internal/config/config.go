package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           int           `toml:"port"`
	MongoURI       string        `toml:"uri"`
	Database       string        `toml:"database"`
	Store          string        `toml:"store"`
	RedisURL       string        `toml:"redis_url"`
	CacheTTL       time.Duration `toml:"cache_ttl"`
	NatsURL        string        `toml:"nats_url"`
	StaticDir      string        `toml:"static_dir"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	RateLimitRPS   float64       `toml:"rate_limit_rps"`
	RateLimitBurst int           `toml:"rate_limit_burst"`
	LogLevel       string        `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		Port:           8000,
		Database:       "database1",
		Store:          StoreMongo,
		CacheTTL:       5 * time.Minute,
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   100,
		RateLimitBurst: 50,
		LogLevel:       "info",
	}
}

// Load builds the configuration from defaults, an optional TOML file and the
// environment, in that order. A .env file in the working directory is loaded
// into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port, strconv.Atoi)
	cfg.MongoURI = envOr("URI", cfg.MongoURI, asString)
	cfg.Database = envOr("DATABASE", cfg.Database, asString)
	cfg.Store = envOr("STORE", cfg.Store, asString)
	cfg.RedisURL = envOr("REDIS_URL", cfg.RedisURL, asString)
	cfg.CacheTTL = envOr("CACHE_TTL", cfg.CacheTTL, time.ParseDuration)
	cfg.NatsURL = envOr("NATS_URL", cfg.NatsURL, asString)
	cfg.StaticDir = envOr("STATIC_DIR", cfg.StaticDir, asString)
	cfg.RequestTimeout = envOr("REQUEST_TIMEOUT", cfg.RequestTimeout, time.ParseDuration)
	cfg.RateLimitRPS = envOr("RATE_LIMIT_RPS", cfg.RateLimitRPS, parseFloat)
	cfg.RateLimitBurst = envOr("RATE_LIMIT_BURST", cfg.RateLimitBurst, strconv.Atoi)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel, asString)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("URI must be set when STORE=mongo")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// envOr returns the parsed value of key. Unset, empty or unparsable variables
// leave fallback in place.
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func asString(s string) (string, error) { return s, nil }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
