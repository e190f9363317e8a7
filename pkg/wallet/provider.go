package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"dex-swap/pkg/registry"
)

// EventType identifies a provider-pushed notification.
type EventType string

const (
	EventAccountsChanged EventType = "accountsChanged"
	EventChainChanged    EventType = "chainChanged"
	EventDisconnect      EventType = "disconnect"
)

// Event is an asynchronous notification from the provider. Events arrive at
// arbitrary times, outside any request the session made.
type Event struct {
	Type     EventType
	Accounts []common.Address
	ChainID  int64
}

// Signer signs transactions for one account.
type Signer interface {
	Address() common.Address
	SignTx(chainID *big.Int, tx *types.Transaction) (*types.Transaction, error)
}

// Provider is the wallet boundary: account access, chain switching, signing
// and event subscription.
type Provider interface {
	// RequestAccounts asks the wallet for account access. It returns
	// ErrUserRejected if the user declines.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts returns the currently authorized accounts without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	// ChainID returns the provider's active chain.
	ChainID(ctx context.Context) (int64, error)
	// SwitchChain asks the wallet to change its active chain. It returns
	// ErrChainNotConfigured for chains the wallet has never seen.
	SwitchChain(ctx context.Context, chainID int64) error
	// Signer returns the signer for the active account.
	Signer() Signer
	// Subscribe registers a listener for provider events. The returned
	// function unregisters it.
	Subscribe(listener func(Event)) (unsubscribe func())
}

// KeyProvider is a Provider backed by a local private key. It stands in for
// a browser wallet in the CLI: account access always succeeds, and chain
// switches are restricted to networks in the registry.
type KeyProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address

	mu        sync.Mutex
	chainID   int64
	listeners map[int]func(Event)
	nextID    int
}

// NewKeyProvider parses a hex private key and anchors the provider on the
// given network.
func NewKeyProvider(hexKey string, network *registry.Network) (*KeyProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &KeyProvider{
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		chainID:   network.ChainID,
		listeners: make(map[int]func(Event)),
	}, nil
}

// RequestAccounts implements Provider. A local key never prompts.
func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

// Accounts implements Provider.
func (p *KeyProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

// ChainID implements Provider.
func (p *KeyProvider) ChainID(ctx context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chainID, nil
}

// SwitchChain implements Provider. Only chains present in the registry are
// considered configured.
func (p *KeyProvider) SwitchChain(ctx context.Context, chainID int64) error {
	if registry.FindNetwork(chainID) == nil {
		return ErrChainNotConfigured
	}

	p.mu.Lock()
	p.chainID = chainID
	listeners := p.snapshotListeners()
	p.mu.Unlock()

	for _, l := range listeners {
		l(Event{Type: EventChainChanged, ChainID: chainID})
	}
	return nil
}

// Signer implements Provider.
func (p *KeyProvider) Signer() Signer {
	return &keySigner{key: p.key, address: p.address}
}

// Subscribe implements Provider.
func (p *KeyProvider) Subscribe(listener func(Event)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// Emit pushes an event to all listeners. Exposed for tests that simulate
// wallet-side account and chain changes.
func (p *KeyProvider) Emit(ev Event) {
	p.mu.Lock()
	listeners := p.snapshotListeners()
	p.mu.Unlock()
	for _, l := range listeners {
		l(ev)
	}
}

// snapshotListeners must be called with the lock held.
func (p *KeyProvider) snapshotListeners() []func(Event) {
	out := make([]func(Event), 0, len(p.listeners))
	for _, l := range p.listeners {
		out = append(out, l)
	}
	return out
}

type keySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func (s *keySigner) Address() common.Address { return s.address }

func (s *keySigner) SignTx(chainID *big.Int, tx *types.Transaction) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
