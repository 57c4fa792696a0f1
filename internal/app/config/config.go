package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DatabaseURL string        `env:"DATABASE_URL" env-required:"true"`
	HTTPAddr    string        `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel    string        `env:"LOG_LEVEL" env-default:"info"`
	TxTimeout   time.Duration `env:"DB_TX_TIMEOUT" env-default:"5s"`
	Cache       CacheConfig
}

type CacheConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	TTL           time.Duration `env:"CACHE_TTL" env-default:"10m"`
	PollInterval  time.Duration `env:"CACHE_POLL_INTERVAL" env-default:"1s"`
	PollTimeout   time.Duration `env:"CACHE_POLL_TIMEOUT" env-default:"60s"`
	QueryTimeout  time.Duration `env:"CACHE_QUERY_TIMEOUT" env-default:"30s"`
	WarmerWorkers int           `env:"WARMER_WORKERS" env-default:"4"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.Cache.PollInterval <= 0 || cfg.Cache.PollTimeout < cfg.Cache.PollInterval {
		return Config{}, fmt.Errorf("CACHE_POLL_TIMEOUT (%s) must be at least CACHE_POLL_INTERVAL (%s)",
			cfg.Cache.PollTimeout, cfg.Cache.PollInterval)
	}
	if cfg.Cache.WarmerWorkers < 1 {
		return Config{}, fmt.Errorf("WARMER_WORKERS must be positive, got %d", cfg.Cache.WarmerWorkers)
	}

	return cfg, nil
}
