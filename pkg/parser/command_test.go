package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwapCommand(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		cmd, err := ParseSwapCommand("1 ETH to USDC")
		require.NoError(t, err)
		assert.Equal(t, "1", cmd.Amount)
		assert.Equal(t, "ETH", cmd.FromToken)
		assert.Equal(t, "USDC", cmd.ToToken)
	})

	t.Run("DecimalAmount", func(t *testing.T) {
		cmd, err := ParseSwapCommand("1.5 WETH to DAI")
		require.NoError(t, err)
		assert.Equal(t, "1.5", cmd.Amount)
		assert.Equal(t, "WETH", cmd.FromToken)
		assert.Equal(t, "DAI", cmd.ToToken)
	})

	t.Run("SwapPrefix", func(t *testing.T) {
		cmd, err := ParseSwapCommand("swap 100 USDC to WBTC")
		require.NoError(t, err)
		assert.Equal(t, "100", cmd.Amount)
	})

	t.Run("LowercaseTokens", func(t *testing.T) {
		cmd, err := ParseSwapCommand("2 eth to usdc")
		require.NoError(t, err)
		assert.Equal(t, "ETH", cmd.FromToken)
		assert.Equal(t, "USDC", cmd.ToToken)
	})

	t.Run("MissingDestination", func(t *testing.T) {
		_, err := ParseSwapCommand("1 ETH")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseSwapCommand("")
		assert.Error(t, err)
	})
}

func TestValidateSwapCommand(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cmd, err := ParseSwapCommand("1 ETH to USDC")
		require.NoError(t, err)
		assert.NoError(t, ValidateSwapCommand(cmd))
	})

	t.Run("SameTokenBothSides", func(t *testing.T) {
		cmd, err := ParseSwapCommand("1 ETH to ETH")
		require.NoError(t, err)
		assert.Error(t, ValidateSwapCommand(cmd))
	})
}
