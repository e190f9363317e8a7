package chain

import "fmt"

// NetworkError indicates an RPC-level failure: the endpoint was unreachable
// or the call itself failed before reaching contract logic.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func netErr(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}
