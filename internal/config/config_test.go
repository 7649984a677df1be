package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, int64(500000), cfg.Checkout.FreeDeliveryThreshold)
	assert.Equal(t, int64(25000), cfg.Checkout.DeliveryFee)
	assert.Equal(t, 5*time.Second, cfg.Checkout.TxTimeout)
	assert.Equal(t, 3, cfg.Checkout.MaxRetryAttempts)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIBaseURL)
	assert.Empty(t, cfg.Telegram.AdminIDs)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: 9090\ncheckout_delivery_fee: 30000\nlog_level: debug\n"), 0o600))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("TELEGRAM_ADMIN_IDS", "111, 222")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, int64(30000), cfg.Checkout.DeliveryFee)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []int64{111, 222}, cfg.Telegram.AdminIDs)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CHECKOUT_TX_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidAdminIDs(t *testing.T) {
	t.Setenv("TELEGRAM_ADMIN_IDS", "1,abc")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
