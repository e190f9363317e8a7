// Package wallet tracks the connected account and chain, reacting to
// provider-pushed events the same way it reacts to direct user actions.
package wallet

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// State is the session's connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Session is the single shared mutable resource of the app. Direct actions
// (Connect, Disconnect, SwitchNetwork) and asynchronous provider events all
// funnel through the same update path; each update replaces the snapshot
// wholesale, so last write wins.
type Session struct {
	provider Provider

	mu          sync.RWMutex
	state       State
	account     common.Address
	chainID     int64
	unsubscribe func()
}

// NewSession creates a disconnected session. provider may be nil, in which
// case Connect reports ErrProviderMissing.
func NewSession(provider Provider) *Session {
	return &Session{provider: provider, state: StateDisconnected}
}

// Connect requests account access and moves the session to Connected.
func (s *Session) Connect(ctx context.Context) error {
	if s.provider == nil {
		return ErrProviderMissing
	}

	s.mu.Lock()
	if s.state == StateConnecting {
		s.mu.Unlock()
		return ErrRequestPending
	}
	s.state = StateConnecting
	s.mu.Unlock()

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		s.reset()
		return err
	}
	if len(accounts) == 0 {
		s.reset()
		return ErrUserRejected
	}

	chainID, err := s.provider.ChainID(ctx)
	if err != nil {
		s.reset()
		return err
	}

	s.mu.Lock()
	s.state = StateConnected
	s.account = accounts[0]
	s.chainID = chainID
	if s.unsubscribe == nil {
		s.unsubscribe = s.provider.Subscribe(s.handleEvent)
	}
	s.mu.Unlock()
	return nil
}

// Disconnect resets the session and unregisters the event listener.
func (s *Session) Disconnect() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	s.reset()
}

// SwitchNetwork asks the provider to change the active chain. The session's
// chain ID is updated by the resulting chain-changed event, not here, so an
// event-less provider failure leaves the snapshot untouched.
func (s *Session) SwitchNetwork(ctx context.Context, chainID int64) error {
	if s.provider == nil {
		return ErrProviderMissing
	}
	return s.provider.SwitchChain(ctx, chainID)
}

// Signer returns the active account's signer.
func (s *Session) Signer() (Signer, error) {
	s.mu.RLock()
	connected := s.state == StateConnected
	s.mu.RUnlock()
	if !connected || s.provider == nil {
		return nil, ErrNotConnected
	}
	return s.provider.Signer(), nil
}

// Account returns the connected account and whether one is connected.
func (s *Session) Account() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.state == StateConnected
}

// ChainID returns the session's active chain, zero when disconnected.
func (s *Session) ChainID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chainID
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsConnected reports whether an account is active.
func (s *Session) IsConnected() bool {
	return s.State() == StateConnected
}

// handleEvent re-derives session state from a provider event. Events are
// never assumed to match an in-flight request.
func (s *Session) handleEvent(ev Event) {
	switch ev.Type {
	case EventAccountsChanged:
		if len(ev.Accounts) == 0 {
			s.reset()
			return
		}
		s.mu.Lock()
		s.account = ev.Accounts[0]
		s.state = StateConnected
		s.mu.Unlock()
	case EventChainChanged:
		s.mu.Lock()
		s.chainID = ev.ChainID
		s.mu.Unlock()
	case EventDisconnect:
		s.reset()
	}
}

func (s *Session) reset() {
	s.mu.Lock()
	s.state = StateDisconnected
	s.account = common.Address{}
	s.chainID = 0
	s.mu.Unlock()
}
