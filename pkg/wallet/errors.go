package wallet

import "errors"

var (
	// ErrProviderMissing means no wallet provider is available at all.
	ErrProviderMissing = errors.New("no wallet provider configured")

	// ErrUserRejected means the user declined a wallet prompt.
	ErrUserRejected = errors.New("request rejected by user")

	// ErrRequestPending means a connection request is already outstanding.
	ErrRequestPending = errors.New("a connection request is already pending")

	// ErrChainNotConfigured means the provider does not know the requested
	// chain. The caller is expected to prompt for chain addition; the
	// session never adds chains on its own.
	ErrChainNotConfigured = errors.New("chain is not configured in the wallet")

	// ErrNotConnected means an operation needing an active account was
	// attempted while disconnected.
	ErrNotConnected = errors.New("wallet is not connected")
)
