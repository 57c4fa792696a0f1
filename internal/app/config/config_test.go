package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prdashboard/internal/app/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 5*time.Second, cfg.TxTimeout)
	require.Empty(t, cfg.Cache.RedisAddr)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, time.Second, cfg.Cache.PollInterval)
	require.Equal(t, time.Minute, cfg.Cache.PollTimeout)
	require.Equal(t, 4, cfg.Cache.WarmerWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_POLL_INTERVAL", "250ms")
	t.Setenv("CACHE_POLL_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	require.Equal(t, 250*time.Millisecond, cfg.Cache.PollInterval)
	require.Equal(t, 5*time.Second, cfg.Cache.PollTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("CACHE_POLL_INTERVAL", "2s")
	t.Setenv("CACHE_POLL_TIMEOUT", "1s")
	_, err = config.Load()
	require.Error(t, err)
}
