package quote

import (
	"context"
	"math/big"
	"sync"

	"dex-swap/pkg/registry"
)

// Quoter is what the Fetcher drives; *Engine implements it.
type Quoter interface {
	BestQuote(ctx context.Context, tokenIn, tokenOut *registry.Token, amountIn *big.Int) (*Quote, error)
}

// Fetcher serializes quote requests so that a newer request always
// supersedes an older one. Each Fetch bumps a generation counter and cancels
// the in-flight request; a response is delivered only if its generation is
// still the latest, so out-of-order resolutions can never surface a stale
// quote. Abandoning a quote request is safe, it has no on-chain side effects.
type Fetcher struct {
	quoter Quoter

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewFetcher wraps a quoter with cancel-and-supersede semantics.
func NewFetcher(quoter Quoter) *Fetcher {
	return &Fetcher{quoter: quoter}
}

// Fetch requests a quote asynchronously. deliver is invoked exactly once
// with the result unless a newer Fetch supersedes this one first, in which
// case the result is discarded.
func (f *Fetcher) Fetch(ctx context.Context, tokenIn, tokenOut *registry.Token, amountIn *big.Int, deliver func(*Quote, error)) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	reqCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		defer cancel()
		q, err := f.quoter.BestQuote(reqCtx, tokenIn, tokenOut, amountIn)

		f.mu.Lock()
		stale := gen != f.gen
		f.mu.Unlock()
		if stale {
			return
		}
		deliver(q, err)
	}()
}

// Stop cancels any in-flight request and invalidates its result.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
}
