package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 90*time.Second, cfg.AccessTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags(t *testing.T) {
	t.Run("flags override", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.parseFlags([]string{"-a", ":3000", "-t", "5", "-r", "120"})

		assert.Equal(t, ":3000", cfg.Addr)
		assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
		assert.Equal(t, 120*time.Minute, cfg.RefreshTTL)
	})

	t.Run("absent ttl flags keep sub-minute env values", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.AccessTTL = 90 * time.Second
		cfg.RefreshTTL = 36 * time.Hour

		cfg.parseFlags(nil)

		require.Equal(t, 90*time.Second, cfg.AccessTTL)
		require.Equal(t, 36*time.Hour, cfg.RefreshTTL)
	})
}
