package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworks(t *testing.T) {
	t.Run("KnownChains", func(t *testing.T) {
		require.NotNil(t, FindNetwork(11155111))
		require.NotNil(t, FindNetwork(1))
		assert.Nil(t, FindNetwork(137))
	})

	t.Run("UniswapAddressesPresent", func(t *testing.T) {
		for _, n := range Networks() {
			assert.NotEmpty(t, n.Router, n.Name)
			assert.NotEmpty(t, n.Quoter, n.Name)
			assert.NotEmpty(t, n.Factory, n.Name)
			assert.NotEmpty(t, n.WrappedNative, n.Name)
			assert.NotEmpty(t, n.BlockExplorer, n.Name)
		}
	})

	t.Run("ExactlyOneNativeToken", func(t *testing.T) {
		for _, n := range Networks() {
			count := 0
			for _, token := range n.Tokens {
				if token.IsNative {
					count++
					assert.Empty(t, token.Address, "native token must have no address")
				} else {
					assert.NotEmpty(t, token.Address, "%s %s", n.Name, token.Symbol)
				}
			}
			assert.Equal(t, 1, count, n.Name)
		}
	})

	t.Run("ExplorerTxURL", func(t *testing.T) {
		n := FindNetwork(11155111)
		url := n.ExplorerTxURL("0xabc")
		assert.True(t, strings.HasSuffix(url, "/tx/0xabc"), url)
	})
}

func TestFindToken(t *testing.T) {
	n := FindNetwork(11155111)
	require.NotNil(t, n)

	t.Run("CaseInsensitive", func(t *testing.T) {
		require.NotNil(t, n.FindToken("usdc"))
		require.NotNil(t, n.FindToken("USDC"))
		assert.Equal(t, n.FindToken("usdc"), n.FindToken("USDC"))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Nil(t, n.FindToken("DOGE"))
	})

	t.Run("ByAddress", func(t *testing.T) {
		usdc := n.FindToken("USDC")
		require.NotNil(t, usdc)

		byAddr := n.FindTokenByAddress(strings.ToLower(usdc.Address))
		require.NotNil(t, byAddr)
		assert.Equal(t, usdc.Symbol, byAddr.Symbol)

		native := n.FindTokenByAddress("")
		require.NotNil(t, native)
		assert.True(t, native.IsNative)
	})

	t.Run("NativeToken", func(t *testing.T) {
		native := n.NativeToken()
		require.NotNil(t, native)
		assert.Equal(t, "ETH", native.Symbol)
	})
}

func TestPairSelection(t *testing.T) {
	t.Run("CollisionOnSetFrom", func(t *testing.T) {
		// From ETH/USDC, selecting USDC as the source must not leave
		// USDC on both sides: the destination takes the old source.
		p := NewPairSelection("ETH", "USDC")
		p.SetFrom("USDC")
		assert.Equal(t, "USDC", p.From())
		assert.Equal(t, "ETH", p.To())
	})

	t.Run("CollisionOnSetTo", func(t *testing.T) {
		p := NewPairSelection("ETH", "USDC")
		p.SetTo("ETH")
		assert.Equal(t, "USDC", p.From())
		assert.Equal(t, "ETH", p.To())
	})

	t.Run("NoCollision", func(t *testing.T) {
		p := NewPairSelection("ETH", "USDC")
		p.SetFrom("WBTC")
		assert.Equal(t, "WBTC", p.From())
		assert.Equal(t, "USDC", p.To())
	})

	t.Run("CollisionIsCaseInsensitive", func(t *testing.T) {
		p := NewPairSelection("ETH", "USDC")
		p.SetFrom("usdc")
		assert.Equal(t, "usdc", p.From())
		assert.Equal(t, "ETH", p.To())
	})

	t.Run("Flip", func(t *testing.T) {
		p := NewPairSelection("ETH", "USDC")
		p.Flip()
		assert.Equal(t, "USDC", p.From())
		assert.Equal(t, "ETH", p.To())
	})
}
