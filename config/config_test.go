package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-swap/pkg/registry"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.DefaultSlippage)
	assert.Equal(t, 20, cfg.DeadlineMinutes)
	assert.Empty(t, cfg.PrivateKey)
}

func TestRPCURL(t *testing.T) {
	network := registry.FindNetwork(11155111)
	require.NotNil(t, network)

	t.Run("DefaultFromRegistry", func(t *testing.T) {
		cfg := &Config{}
		assert.Equal(t, network.RPCURL, cfg.RPCURL(network))
	})

	t.Run("Override", func(t *testing.T) {
		cfg := &Config{RPCOverrides: map[string]string{
			"11155111": "http://localhost:8545",
		}}
		assert.Equal(t, "http://localhost:8545", cfg.RPCURL(network))
	})
}

func TestRequireSigner(t *testing.T) {
	assert.Error(t, (&Config{}).RequireSigner())
	assert.NoError(t, (&Config{PrivateKey: "abc"}).RequireSigner())
}
