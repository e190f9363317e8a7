package swap

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ApprovalError reports a failed token approval. It is distinct from a swap
// failure: the swap was never submitted.
type ApprovalError struct {
	TxHash common.Hash
	Err    error
}

func (e *ApprovalError) Error() string {
	return fmt.Sprintf("token approval failed: %v", e.Err)
}

func (e *ApprovalError) Unwrap() error { return e.Err }

// SwapError reports a failed swap submission or an on-chain revert. Reason
// carries the contract's revert reason verbatim when one is available.
type SwapError struct {
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *SwapError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("swap failed: %s", e.Reason)
	}
	return fmt.Sprintf("swap failed: %v", e.Err)
}

func (e *SwapError) Unwrap() error { return e.Err }
