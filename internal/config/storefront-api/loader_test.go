package storefront_api_config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/foodcart")
	t.Setenv("AUTH_BEARER_SECRET", "b")
	t.Setenv("AUTH_REFRESH_SECRET", "r")
	t.Setenv("AUTH_COOKIE_SECRET", "c")
}

func TestLoad_DefaultsWithRequiredEnv(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 20*time.Minute, cfg.Auth.BearerTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "foodcart.order.placed", cfg.Kafka.Topic)
	assert.Equal(t, "b", cfg.Auth.BearerSecret)
	assert.Equal(t, 3*time.Second, cfg.DB.QueryTimeout)
}

func TestLoad_FailsFastOnMissingSecret(t *testing.T) {
	cases := map[string]error{
		"AUTH_BEARER_SECRET":  ErrNoBearerSecret,
		"AUTH_REFRESH_SECRET": ErrNoRefreshSecret,
		"AUTH_COOKIE_SECRET":  ErrNoCookieSecret,
		"DB_DSN":              ErrNoDSN,
	}
	for env, want := range cases {
		t.Run(env, func(t *testing.T) {
			setRequired(t)
			t.Setenv(env, "")
			_, err := Load("")
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	setRequired(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  http_addr: ":9999"
auth:
  bearer_ttl: 5m
outbox:
  workers: 4
`), 0o600))
	t.Setenv("OUTBOX_WORKERS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.Auth.BearerTTL)
	assert.Equal(t, 2, cfg.Outbox.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	setRequired(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
