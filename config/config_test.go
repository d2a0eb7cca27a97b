package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://fullnode.devnet.aptoslabs.com", cfg.NodeURL)
	assert.Equal(t, 3, cfg.AvatarMaxDepth)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.RedisEnabled())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APTOS_NODE_URL", "http://localhost:8080")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.NodeURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "localhost:6380", cfg.RedisAddr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing node url", func(c *Config) { c.NodeURL = "" }, "APTOS_NODE_URL"},
		{"bad contract address", func(c *Config) { c.ContractAddress = "not-an-address" }, "CONTRACT_ADDRESS"},
		{"missing ans url", func(c *Config) { c.ANSURL = "" }, "ANS_API_URL"},
		{"zero avatar depth", func(c *Config) { c.AvatarMaxDepth = 0 }, "AVATAR_MAX_DEPTH"},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, "HTTP_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
