package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, int64(3600), cfg.S3.PresignExpiry)
	assert.Equal(t, 500, cfg.Export.MaxInvoices)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GSTDESK_SERVER_PORT", ":9090")
	t.Setenv("GSTDESK_DB_HOST", "db.internal")
	t.Setenv("GSTDESK_DB_PASSWORD", "s3cret")
	t.Setenv("GSTDESK_EMAIL_PROVIDER", "ses")
	t.Setenv("GSTDESK_CORS_ALLOWED_ORIGINS", "https://app.gstdesk.in, https://staging.gstdesk.in")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, []string{"https://app.gstdesk.in", "https://staging.gstdesk.in"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{
		Host: "localhost", Port: 5432, User: "gstdesk", Password: "pw",
		Name: "gstdesk_db", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://gstdesk:pw@localhost:5432/gstdesk_db?sslmode=disable", d.DSN())
}
