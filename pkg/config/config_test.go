package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("CAMPUSEATS_APP_ENV", "production")
	t.Setenv("CAMPUSEATS_UPSTREAM_BASE_URL", "https://dining.campus.edu/api")
	t.Setenv("CAMPUSEATS_REDIS_URL", "redis://localhost:6379/0")
}

func TestLoadSuccess(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.App.Env)
	require.Equal(t, "https://dining.campus.edu/api", cfg.Upstream.BaseURL)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)

	require.Equal(t, 99, cfg.Cart.DefaultStockLimit)
	require.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	require.Equal(t, 4*time.Second, cfg.Checkout.SuccessNoticeTTL)
	require.Equal(t, "X-Session-Id", cfg.Session.HeaderName)
}

func TestLoadMissingUpstream(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("CAMPUSEATS_UPSTREAM_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadNeedsSomeStateBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("CAMPUSEATS_REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSQLiteSatisfiesStateBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("CAMPUSEATS_REDIS_URL", "")
	t.Setenv("CAMPUSEATS_USE_SQLITE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Store.UseSQLite)
	require.Equal(t, "campuseats.db", cfg.Store.SQLitePath)
}
