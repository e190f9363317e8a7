package registry

import "strings"

// PairSelection tracks the from/to token symbols of a swap pair. Assigning
// the same symbol to both sides is never accepted silently: the side that is
// not being edited is reassigned to the previous value of the edited side.
type PairSelection struct {
	from string
	to   string
}

// NewPairSelection returns a selection initialized to the given pair.
func NewPairSelection(from, to string) *PairSelection {
	return &PairSelection{from: from, to: to}
}

// From returns the current source symbol.
func (p *PairSelection) From() string { return p.from }

// To returns the current destination symbol.
func (p *PairSelection) To() string { return p.to }

// SetFrom updates the source symbol. If it collides with the destination,
// the destination takes the previous source value.
func (p *PairSelection) SetFrom(symbol string) {
	if strings.EqualFold(symbol, p.to) {
		p.to = p.from
	}
	p.from = symbol
}

// SetTo updates the destination symbol. If it collides with the source,
// the source takes the previous destination value.
func (p *PairSelection) SetTo(symbol string) {
	if strings.EqualFold(symbol, p.from) {
		p.from = p.to
	}
	p.to = symbol
}

// Flip swaps the two sides.
func (p *PairSelection) Flip() {
	p.from, p.to = p.to, p.from
}
