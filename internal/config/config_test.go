package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverlaysYAML(t *testing.T) {
	cfg := Default()
	raw := []byte(`
http_addr: ":9090"
bot_delay: 250ms
bot_names: [Alpha, Beta]
weights:
  w_block: 42
`)
	require.NoError(t, Parse(raw, &cfg))

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.BotDelay)
	assert.Equal(t, []string{"Alpha", "Beta"}, cfg.BotNames)
	assert.Equal(t, 42, cfg.Weights.WBlock)
	// untouched keys keep defaults
	assert.Equal(t, DefaultWeights().WWin, cfg.Weights.WWin)
}

func TestParseRejectsGarbage(t *testing.T) {
	cfg := Default()
	assert.Error(t, Parse([]byte("http_addr: [unterminated"), &cfg))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabletop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":7000\"\nbot_delay: 2s\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BOT_DELAY", "0s")
	t.Setenv("W_CAPTURE", "77")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, time.Duration(0), cfg.BotDelay)
	assert.Equal(t, 77, cfg.Weights.WCapture)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
