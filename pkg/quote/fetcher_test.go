package quote

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dex-swap/pkg/registry"
)

// blockingQuoter holds each BestQuote call until released, so tests can
// control resolution order.
type blockingQuoter struct {
	mu      sync.Mutex
	pending []chan *Quote
	started chan struct{}
}

func newBlockingQuoter() *blockingQuoter {
	return &blockingQuoter{started: make(chan struct{}, 16)}
}

func (b *blockingQuoter) BestQuote(ctx context.Context, tokenIn, tokenOut *registry.Token, amountIn *big.Int) (*Quote, error) {
	release := make(chan *Quote, 1)
	b.mu.Lock()
	b.pending = append(b.pending, release)
	b.mu.Unlock()
	b.started <- struct{}{}

	select {
	case q := <-release:
		return q, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingQuoter) release(i int, q *Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[i] <- q
}

func TestFetcher(t *testing.T) {
	weth := testNetwork().FindToken("WETH")
	usdc := testNetwork().FindToken("USDC")

	t.Run("DeliversLatest", func(t *testing.T) {
		quoter := newBlockingQuoter()
		fetcher := NewFetcher(quoter)
		defer fetcher.Stop()

		results := make(chan *Quote, 2)
		fetcher.Fetch(context.Background(), weth, usdc, big.NewInt(1), func(q *Quote, err error) {
			results <- q
		})
		<-quoter.started

		quoter.release(0, &Quote{AmountOut: big.NewInt(111)})
		select {
		case q := <-results:
			assert.Equal(t, "111", q.AmountOut.String())
		case <-time.After(time.Second):
			t.Fatal("quote never delivered")
		}
	})

	t.Run("SupersededResultDiscarded", func(t *testing.T) {
		quoter := newBlockingQuoter()
		fetcher := NewFetcher(quoter)
		defer fetcher.Stop()

		type delivery struct {
			q   *Quote
			err error
		}
		results := make(chan delivery, 2)
		deliver := func(q *Quote, err error) { results <- delivery{q, err} }

		fetcher.Fetch(context.Background(), weth, usdc, big.NewInt(1), deliver)
		<-quoter.started
		fetcher.Fetch(context.Background(), weth, usdc, big.NewInt(2), deliver)
		<-quoter.started

		// Resolve the stale request first, then the live one.
		quoter.release(0, &Quote{AmountOut: big.NewInt(111)})
		quoter.release(1, &Quote{AmountOut: big.NewInt(222)})

		select {
		case d := <-results:
			require.NotNil(t, d.q)
			assert.Equal(t, "222", d.q.AmountOut.String())
		case <-time.After(time.Second):
			t.Fatal("quote never delivered")
		}

		// The superseded result must never surface.
		select {
		case d := <-results:
			t.Fatalf("stale result delivered: %+v", d)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("StopInvalidatesInFlight", func(t *testing.T) {
		quoter := newBlockingQuoter()
		fetcher := NewFetcher(quoter)

		results := make(chan *Quote, 1)
		fetcher.Fetch(context.Background(), weth, usdc, big.NewInt(1), func(q *Quote, err error) {
			results <- q
		})
		<-quoter.started
		fetcher.Stop()

		select {
		case q := <-results:
			t.Fatalf("result delivered after Stop: %+v", q)
		case <-time.After(50 * time.Millisecond):
		}
	})
}
