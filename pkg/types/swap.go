package types

// SwapCommand represents a user's parsed swap or quote request.
type SwapCommand struct {
	Amount    string
	FromToken string
	ToToken   string
}
