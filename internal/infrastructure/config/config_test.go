package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.Service.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Service.RequestTimeout)
	assert.Equal(t, "memory", cfg.Drafts.Backend)
	assert.Equal(t, "floweditor-drafts.db", cfg.Drafts.SQLitePath)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":8080", cfg.App.ServerAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FLOW_SERVICE_URL", "https://flows.example.com/api")
	t.Setenv("FLOW_SERVICE_API_KEY", "secret")
	t.Setenv("FLOW_SERVICE_TIMEOUT", "5s")
	t.Setenv("DRAFT_BACKEND", "sqlite")
	t.Setenv("DRAFT_SQLITE_PATH", "/tmp/drafts.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FLOWEDITOR_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://flows.example.com/api", cfg.Service.BaseURL)
	assert.Equal(t, "secret", cfg.Service.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Service.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.Drafts.Backend)
	assert.Equal(t, "/tmp/drafts.db", cfg.Drafts.SQLitePath)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9090", cfg.App.ServerAddr)
}

func TestLoad_TimeoutFormats(t *testing.T) {
	t.Run("bare seconds", func(t *testing.T) {
		t.Setenv("FLOW_SERVICE_TIMEOUT", "10")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, cfg.Service.RequestTimeout)
	})

	t.Run("garbage keeps the default", func(t *testing.T) {
		t.Setenv("FLOW_SERVICE_TIMEOUT", "soon")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Service.RequestTimeout)
	})
}
