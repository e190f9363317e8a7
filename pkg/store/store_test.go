package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return s
}

func TestOpen(t *testing.T) {
	t.Run("DefaultsWhenFileMissing", func(t *testing.T) {
		s := openTestStore(t)
		prefs := s.Preferences()
		assert.Equal(t, 0.5, prefs.DefaultSlippage)
		assert.Equal(t, 20, prefs.DeadlineMinutes)
		assert.True(t, prefs.ShowPriceImpactWarning)
		assert.True(t, s.DarkMode())
		assert.Equal(t, []string{"ETH", "USDC", "WBTC"}, s.Favorites())
	})

	t.Run("ReloadsSavedState", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.UpdatePreferences(func(p *Preferences) { p.DefaultSlippage = 1.5 }))
		require.NoError(t, s.AddFavorite("LINK"))

		reopened, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 1.5, reopened.Preferences().DefaultSlippage)
		assert.True(t, reopened.IsFavorite("LINK"))
	})
}

func TestHistory(t *testing.T) {
	t.Run("NewestFirst", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "ETH", ToSymbol: "USDC", AmountIn: "1"}))
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "DAI", ToSymbol: "WETH", AmountIn: "2"}))

		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, "DAI", history[0].FromSymbol)
		assert.Equal(t, "ETH", history[1].FromSymbol)
		assert.NotEmpty(t, history[0].ID)
		assert.False(t, history[0].Timestamp.IsZero())
	})

	t.Run("CapEvictsOldest", func(t *testing.T) {
		s := openTestStore(t)
		for i := 0; i < MaxHistoryEntries+5; i++ {
			require.NoError(t, s.AddSwap(SwapRecord{
				FromSymbol: "ETH",
				ToSymbol:   "USDC",
				AmountIn:   fmt.Sprintf("%d", i),
			}))
		}

		history := s.History()
		require.Len(t, history, MaxHistoryEntries)
		// The newest entry survives at the front, the oldest five are gone.
		assert.Equal(t, fmt.Sprintf("%d", MaxHistoryEntries+4), history[0].AmountIn)
		assert.Equal(t, "5", history[len(history)-1].AmountIn)

		// The aggregate counter is not capped with the list.
		assert.Equal(t, MaxHistoryEntries+5, s.Analytics().TotalSwaps)
	})

	t.Run("Clear", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "ETH", ToSymbol: "USDC"}))
		require.NoError(t, s.ClearHistory())
		assert.Empty(t, s.History())
	})

	t.Run("PairCounts", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "ETH", ToSymbol: "USDC", AmountIn: "1.5"}))
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "ETH", ToSymbol: "USDC", AmountIn: "0.5"}))
		require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "DAI", ToSymbol: "WETH", AmountIn: "100"}))

		analytics := s.Analytics()
		assert.Equal(t, 3, analytics.TotalSwaps)
		assert.InDelta(t, 102.0, analytics.TotalVolume, 1e-9)
		assert.Equal(t, 2, analytics.PairCounts["ETH/USDC"])
		assert.Equal(t, 1, analytics.PairCounts["DAI/WETH"])
	})
}

func TestFavorites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddFavorite("LINK"))
	assert.True(t, s.IsFavorite("LINK"))
	assert.True(t, s.IsFavorite("link"))

	// Adding twice keeps a single entry.
	before := len(s.Favorites())
	require.NoError(t, s.AddFavorite("link"))
	assert.Len(t, s.Favorites(), before)

	require.NoError(t, s.RemoveFavorite("Link"))
	assert.False(t, s.IsFavorite("LINK"))
}

func TestAlerts(t *testing.T) {
	t.Run("Lifecycle", func(t *testing.T) {
		s := openTestStore(t)

		id, err := s.AddAlert("ETH", 4000, "above")
		require.NoError(t, err)
		require.NotEmpty(t, id)

		alerts := s.Alerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, "ETH", alerts[0].Symbol)
		assert.True(t, alerts[0].Active)

		require.NoError(t, s.ToggleAlert(id))
		assert.False(t, s.Alerts()[0].Active)

		require.NoError(t, s.RemoveAlert(id))
		assert.Empty(t, s.Alerts())
	})

	t.Run("InvalidDirection", func(t *testing.T) {
		s := openTestStore(t)
		_, err := s.AddAlert("ETH", 4000, "sideways")
		assert.Error(t, err)
	})

	t.Run("UnknownID", func(t *testing.T) {
		s := openTestStore(t)
		assert.Error(t, s.RemoveAlert("nope"))
		assert.Error(t, s.ToggleAlert("nope"))
	})
}

func TestFlags(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetDarkMode(false))
	assert.False(t, s.DarkMode())

	require.NoError(t, s.SetDeveloperMode(true))
	assert.True(t, s.DeveloperMode())

	assert.False(t, s.OnboardingComplete())
	require.NoError(t, s.CompleteOnboarding())
	assert.True(t, s.OnboardingComplete())
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.AddSwap(SwapRecord{FromSymbol: "ETH", ToSymbol: "USDC", Timestamp: time.Now()}))
	require.NoError(t, s.SetDarkMode(false))
	require.NoError(t, s.AddFavorite("LINK"))

	require.NoError(t, s.Reset())
	assert.Empty(t, s.History())
	assert.True(t, s.DarkMode())
	assert.Equal(t, []string{"ETH", "USDC", "WBTC"}, s.Favorites())
	assert.Zero(t, s.Analytics().TotalSwaps)
}
