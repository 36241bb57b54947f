package main

import (
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FREEPIK_API_KEY", "k")
	for _, key := range []string{
		"FREEPIK_BASE_URL", "MCP_TRANSPORT", "MCP_HTTP_ADDR",
		"POLL_INTERVAL", "POLL_MAX_ATTEMPTS", "MYSTIC_POLL_MAX_ATTEMPTS",
	} {
		t.Setenv(key, "") // register restore, then clear for real
		os.Unsetenv(key)
	}

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "https://api.freepik.com", cfg.BaseURL)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, "localhost:8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 60, cfg.PollMaxAttempts)
	assert.Equal(t, 45, cfg.MysticMaxAttempts)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FREEPIK_API_KEY", "k")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("POLL_MAX_ATTEMPTS", "12")
	t.Setenv("MYSTIC_POLL_MAX_ATTEMPTS", "7")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 12, cfg.PollMaxAttempts)
	assert.Equal(t, 7, cfg.MysticMaxAttempts)
}

func TestDecodeSessionConfig(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte(`{"apiKey":"session-key"}`))

	sc, err := decodeSessionConfig(blob)
	require.NoError(t, err)
	assert.Equal(t, "session-key", sc.APIKey)
}

func TestDecodeSessionConfigURLAlphabet(t *testing.T) {
	blob := base64.URLEncoding.EncodeToString([]byte(`{"apiKey":"session-key"}`))

	sc, err := decodeSessionConfig(blob)
	require.NoError(t, err)
	assert.Equal(t, "session-key", sc.APIKey)
}

func TestDecodeSessionConfigEmpty(t *testing.T) {
	sc, err := decodeSessionConfig("")
	require.NoError(t, err)
	assert.Empty(t, sc.APIKey)
}

func TestDecodeSessionConfigRejectsGarbage(t *testing.T) {
	_, err := decodeSessionConfig("%%%not-base64%%%")
	require.Error(t, err)

	notJSON := base64.StdEncoding.EncodeToString([]byte(`hello`))
	_, err = decodeSessionConfig(notJSON)
	require.Error(t, err)
}
