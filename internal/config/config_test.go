package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DSN", "host=localhost user=catalog dbname=catalog")
	t.Setenv("SESSION_SECRET", "0123456789abcdef")
	t.Setenv("GOOGLE_KEY", "client-id")
	t.Setenv("GOOGLE_SECRET", "client-secret")
	t.Setenv("GOOGLE_CALLBACK_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("ACCOUNT_ID", "")
	t.Setenv("ACCESS_KEY_ID", "")
	t.Setenv("ACCESS_KEY_SECRET", "")
	t.Setenv("BUCKET_NAME", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "http://localhost:3000/oauth/callback", cfg.GoogleCallback)
	require.False(t, cfg.StorageEnabled())
}

func TestLoadRequiresDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestStorageEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCOUNT_ID", "acct")
	t.Setenv("ACCESS_KEY_ID", "key")
	t.Setenv("ACCESS_KEY_SECRET", "secret")
	t.Setenv("BUCKET_NAME", "pictures")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.StorageEnabled())
}
