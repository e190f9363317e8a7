package store

import "time"

// Preferences are the user-tunable defaults applied across commands.
type Preferences struct {
	DefaultSlippage        float64 `json:"default_slippage"`
	DeadlineMinutes        int     `json:"deadline_minutes"`
	ShowPriceImpactWarning bool    `json:"show_price_impact_warning"`
	AutoAddTokenToWallet   bool    `json:"auto_add_token_to_wallet"`
	EnableNotifications    bool    `json:"enable_notifications"`
	PreferredCurrency      string  `json:"preferred_currency"`
	Language               string  `json:"language"`
}

// SwapRecord is one entry in the append-only swap history.
type SwapRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	AmountIn   string    `json:"amount_in"`
	FromSymbol string    `json:"from_symbol"`
	ToSymbol   string    `json:"to_symbol"`
	MinimumOut string    `json:"minimum_out"`
	TxHash     string    `json:"tx_hash,omitempty"`
	ChainID    int64     `json:"chain_id,omitempty"`
}

// PriceAlert is a client-local alert on a token price level.
type PriceAlert struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	TargetPrice float64   `json:"target_price"`
	Direction   string    `json:"direction"` // "above" or "below"
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analytics are aggregate client-local counters. TotalVolume sums raw input
// amounts across tokens, a rough activity measure rather than a value figure.
type Analytics struct {
	TotalSwaps  int            `json:"total_swaps"`
	TotalVolume float64        `json:"total_volume"`
	PairCounts  map[string]int `json:"pair_counts,omitempty"`
}

// State is everything persisted between runs. There is no schema versioning;
// a format change needs a migration strategy first.
type State struct {
	DarkMode           bool         `json:"dark_mode"`
	OnboardingComplete bool         `json:"onboarding_complete"`
	DeveloperMode      bool         `json:"developer_mode"`
	Preferences        Preferences  `json:"preferences"`
	SwapHistory        []SwapRecord `json:"swap_history"`
	FavoriteTokens     []string     `json:"favorite_tokens"`
	PriceAlerts        []PriceAlert `json:"price_alerts"`
	Analytics          Analytics    `json:"analytics"`
}

func defaultState() State {
	return State{
		DarkMode: true,
		Preferences: Preferences{
			DefaultSlippage:        0.5,
			DeadlineMinutes:        20,
			ShowPriceImpactWarning: true,
			AutoAddTokenToWallet:   true,
			EnableNotifications:    true,
			PreferredCurrency:      "USD",
			Language:               "en",
		},
		FavoriteTokens: []string{"ETH", "USDC", "WBTC"},
	}
}
