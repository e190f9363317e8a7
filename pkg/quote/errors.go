package quote

import "errors"

var (
	// ErrNoLiquidity is returned when no pool exists for the pair at any
	// supported fee tier.
	ErrNoLiquidity = errors.New("no pool available for this pair")

	// ErrInvalidAmount is returned when the input amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)
