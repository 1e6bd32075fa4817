package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "PORTFOLIO_DATA_URL", "PORTFOLIO_DATA_FILE",
		"UPLOAD_BASE_URL", "UPLOAD_PREFIX", "CONTACT_ENDPOINT", "DATABASE_PATH",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "TO_EMAIL",
		"ADMIN_USERNAME", "ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresDataSource(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataURL")
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_DATA_URL", "https://api.example.test/portfolio")
	t.Setenv("UPLOAD_BASE_URL", "https://api.example.test")
	t.Setenv("ADMIN_USERNAME", "zach")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.example.test/portfolio", cfg.DataURL)
	assert.Equal(t, "/uploads", cfg.UploadPrefix)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.False(t, cfg.Admin.Defaulted)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
data_file: ./portfolio.jsonc
upload_prefix: /media
smtp:
  user: me@example.test
  pass: app-password
`), 0o600))
	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Port)
	assert.Equal(t, "./portfolio.jsonc", cfg.DataFile)
	assert.Equal(t, "/media", cfg.UploadPrefix)
	assert.True(t, cfg.SMTP.Enabled())
	assert.True(t, cfg.Admin.Defaulted)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_DATA_FILE", "portfolio.json")
	t.Setenv("UPLOAD_PREFIX", "uploads")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UploadPrefix")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
