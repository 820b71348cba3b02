package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ws://localhost:3000/ws", cfg.Server.URL)
	assert.Equal(t, 20, cfg.Server.ReconnectAttempts)
	assert.Equal(t, time.Second, cfg.Server.ReconnectDelay())
	assert.Equal(t, 3*time.Second, cfg.UI.ToastWindow())
	assert.Equal(t, 2500*time.Millisecond, cfg.UI.RecycleWindow())
	assert.Equal(t, 5*time.Second, cfg.UI.AutoReturnDelay())
	assert.NotEmpty(t, cfg.Server.SessionInvalidMarkers)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  url: wss://play.example.com/ws\n  reconnect_attempts: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "wss://play.example.com/ws", cfg.Server.URL)
	assert.Equal(t, 3, cfg.Server.ReconnectAttempts)
	// Unset fields fall back to defaults.
	assert.Equal(t, time.Second, cfg.Server.ReconnectDelay())
	assert.Equal(t, 2*time.Second, cfg.UI.CopiedWindow())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
