package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err, "Missing config file should not be an error")

	assert.Equal(t, "./badger_data", cfg.BadgerDBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 1024, cfg.CacheSize)
	assert.ErrorIs(t, cfg.ValidateBot(), ErrMissingBotToken)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "TELEGRAM_BOT_TOKEN: from-file\nWORKERS: 4\nLOG_LEVEL: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	t.Setenv("WORKERS", "8")
	t.Setenv("CACHE_SIZE", "0")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TelegramBotToken)
	assert.Equal(t, 8, cfg.Workers, "Environment should override the file")
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"log level":  {"LOG_LEVEL", "loud"},
		"workers":    {"WORKERS", "0"},
		"cache size": {"CACHE_SIZE", "-1"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("WORKERS: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
