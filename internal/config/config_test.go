package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("MATPROP_LOG_LEVEL", "debug")
		t.Setenv("MATPROP_LOG_FORMAT", "json")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestLogger(t *testing.T) {
	t.Run("level gates output", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &Config{LogLevel: "warn", LogFormat: "text"}
		logger, err := cfg.Logger(&buf)
		require.NoError(t, err)

		logger.Info("quiet")
		logger.Warn("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("bad level fails", func(t *testing.T) {
		cfg := &Config{LogLevel: "shout", LogFormat: "text"}
		_, err := cfg.Logger(&bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("bad format fails", func(t *testing.T) {
		cfg := &Config{LogLevel: "info", LogFormat: "xml"}
		_, err := cfg.Logger(&bytes.Buffer{})
		require.Error(t, err)
	})
}
