// Package quote probes the available Uniswap v3 fee tiers for a token pair
// and selects the best indicative quote.
package quote

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"dex-swap/pkg/amount"
	"dex-swap/pkg/registry"
)

// FeeTier is one of the fixed pool fee levels, in hundredths of a basis
// point (100 = 0.01%).
type FeeTier struct {
	Fee   uint32
	Label string
}

// FeeTiers lists the supported tiers in enumeration order. Selection ties
// are broken by this order, first seen wins.
var FeeTiers = []FeeTier{
	{Fee: 100, Label: "0.01%"},
	{Fee: 500, Label: "0.05%"},
	{Fee: 3000, Label: "0.3%"},
	{Fee: 10000, Label: "1%"},
}

// Quote is an indicative, non-binding estimate for a single swap. A new
// input supersedes it wholesale; it is never mutated in place.
type Quote struct {
	TokenIn     *registry.Token
	TokenOut    *registry.Token
	AmountIn    *big.Int
	AmountOut   *big.Int
	UnitPrice   float64
	PriceImpact float64
	Fee         uint32
	FeeLabel    string
	Pool        common.Address
}

// Backend is the on-chain read surface the engine needs. *chain.Client
// implements it.
type Backend interface {
	PoolAddress(ctx context.Context, factory, tokenA, tokenB common.Address, fee uint32) (common.Address, error)
	QuoteExactInputSingle(ctx context.Context, quoter, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error)
	PoolLiquidity(ctx context.Context, pool common.Address) (*big.Int, error)
}

// Engine resolves quotes against one network's Uniswap deployment.
type Engine struct {
	backend Backend
	network *registry.Network
}

// NewEngine creates a quote engine for a network.
func NewEngine(backend Backend, network *registry.Network) *Engine {
	return &Engine{backend: backend, network: network}
}

// erc20Address maps a token to the address used on the Uniswap contracts:
// the native asset trades through its wrapped form.
func (e *Engine) erc20Address(token *registry.Token) common.Address {
	if token.IsNative {
		return common.HexToAddress(e.network.WrappedNative)
	}
	return common.HexToAddress(token.Address)
}

// BestQuote probes every fee tier for the pair and returns the quote with
// the largest output amount. Tiers without a registered pool, and tiers
// whose quote call fails, are skipped.
func (e *Engine) BestQuote(ctx context.Context, tokenIn, tokenOut *registry.Token, amountIn *big.Int) (*Quote, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	factory := common.HexToAddress(e.network.Factory)
	quoter := common.HexToAddress(e.network.Quoter)
	addrIn := e.erc20Address(tokenIn)
	addrOut := e.erc20Address(tokenOut)

	var best *Quote
	for _, tier := range FeeTiers {
		pool, err := e.backend.PoolAddress(ctx, factory, addrIn, addrOut, tier.Fee)
		if err != nil || pool == (common.Address{}) {
			continue
		}

		amountOut, err := e.backend.QuoteExactInputSingle(ctx, quoter, addrIn, addrOut, tier.Fee, amountIn)
		if err != nil {
			continue
		}

		candidate := &Quote{
			TokenIn:     tokenIn,
			TokenOut:    tokenOut,
			AmountIn:    amountIn,
			AmountOut:   amountOut,
			UnitPrice:   amount.Ratio(amountOut, tokenOut.Decimals, amountIn, tokenIn.Decimals),
			PriceImpact: e.priceImpact(ctx, pool, amountIn),
			Fee:         tier.Fee,
			FeeLabel:    tier.Label,
			Pool:        pool,
		}

		// Strictly-largest output wins; on a tie the earlier tier is kept.
		if best == nil || candidate.AmountOut.Cmp(best.AmountOut) > 0 {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrNoLiquidity
	}
	return best, nil
}

// priceImpact approximates the trade's price impact as the input amount
// relative to the pool's raw liquidity, in percent. This is deliberately not
// a concentrated-liquidity curve integral; the simplification is part of the
// displayed numbers and is kept as is. Failures report zero impact.
func (e *Engine) priceImpact(ctx context.Context, pool common.Address, amountIn *big.Int) float64 {
	liquidity, err := e.backend.PoolLiquidity(ctx, pool)
	if err != nil || liquidity == nil || liquidity.Sign() == 0 {
		return 0
	}
	impact := new(big.Int).Mul(amountIn, big.NewInt(10000))
	impact.Quo(impact, liquidity)
	return float64(impact.Int64()) / 100
}
