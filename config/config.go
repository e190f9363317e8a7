package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"dex-swap/pkg/registry"
)

// Config holds the application configuration
type Config struct {
	PrivateKey      string
	StatePath       string
	DefaultSlippage float64
	DeadlineMinutes int

	// RPCOverrides maps a chain ID (as a string) to a replacement RPC URL.
	RPCOverrides map[string]string
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".dex-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("default_slippage", 0.5)
	viper.SetDefault("deadline_minutes", 20)

	// Read from environment variables
	viper.SetEnvPrefix("DEX_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		PrivateKey:      viper.GetString("private_key"),
		StatePath:       viper.GetString("state_path"),
		DefaultSlippage: viper.GetFloat64("default_slippage"),
		DeadlineMinutes: viper.GetInt("deadline_minutes"),
		RPCOverrides:    viper.GetStringMapString("rpc_urls"),
	}

	if cfg.DefaultSlippage < 0 || cfg.DefaultSlippage >= 100 {
		return nil, fmt.Errorf("default_slippage must be in [0, 100), got %v", cfg.DefaultSlippage)
	}

	globalConfig = cfg
	return cfg, nil
}

// RPCURL returns the endpoint for a network, honoring per-chain overrides.
func (c *Config) RPCURL(network *registry.Network) string {
	if override := c.RPCOverrides[strconv.FormatInt(network.ChainID, 10)]; override != "" {
		return override
	}
	return network.RPCURL
}

// RequireSigner ensures a private key is configured for signing commands.
func (c *Config) RequireSigner() error {
	if c.PrivateKey == "" {
		return fmt.Errorf("no signing key configured. Set DEX_SWAP_PRIVATE_KEY or add private_key to ~/.dex-swap.yaml")
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
