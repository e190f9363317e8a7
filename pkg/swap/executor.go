// Package swap assembles and submits single-hop exact-input swaps, including
// the allowance check and approval that must precede a non-native swap.
package swap

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"dex-swap/pkg/amount"
	"dex-swap/pkg/chain"
	"dex-swap/pkg/quote"
	"dex-swap/pkg/registry"
	"dex-swap/pkg/wallet"
)

// Fallback gas limits when estimation fails. The on-chain outcome is
// authoritative either way.
const (
	defaultApproveGasLimit = 60000
	defaultSwapGasLimit    = 300000
)

// Backend is the on-chain surface the executor needs. *chain.Client
// implements it.
type Backend interface {
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Record is the history entry appended after a successful swap.
type Record struct {
	Timestamp  time.Time
	AmountIn   string
	FromSymbol string
	ToSymbol   string
	MinimumOut string
	TxHash     string
	ChainID    int64
}

// Recorder persists swap records.
type Recorder interface {
	RecordSwap(Record) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Record) error

func (f RecorderFunc) RecordSwap(r Record) error { return f(r) }

// Result describes a completed swap.
type Result struct {
	TxHash     common.Hash
	Receipt    *types.Receipt
	AmountIn   *big.Int
	MinimumOut *big.Int
	Deadline   int64

	// Approved is set when a separate approval transaction was required.
	Approved       bool
	ApprovalTxHash common.Hash
}

// Executor submits swaps for one network through a connected session.
type Executor struct {
	client   Backend
	network  *registry.Network
	session  *wallet.Session
	recorder Recorder
	now      func() time.Time
}

// NewExecutor creates a swap executor.
func NewExecutor(client Backend, network *registry.Network, session *wallet.Session) *Executor {
	return &Executor{client: client, network: network, session: session, now: time.Now}
}

// SetRecorder attaches a history recorder. Without one, successful swaps are
// simply not recorded.
func (e *Executor) SetRecorder(r Recorder) { e.recorder = r }

// Execute runs the full swap sequence for a previously obtained quote:
// minimum-output bound, deadline, allowance check with exact-amount approval
// when short, then the swap itself. Each step awaits on-chain confirmation
// before the next. Nothing is retried automatically; a failure at any step
// requires an explicit user-initiated retry.
func (e *Executor) Execute(ctx context.Context, q *quote.Quote, slippageTolerance float64, deadlineMinutes int) (*Result, error) {
	signer, err := e.session.Signer()
	if err != nil {
		return nil, err
	}

	minimumOut, err := amount.ApplySlippage(q.AmountOut, slippageTolerance)
	if err != nil {
		return nil, err
	}
	deadline := e.now().Unix() + int64(deadlineMinutes)*60

	result := &Result{
		AmountIn:   q.AmountIn,
		MinimumOut: minimumOut,
		Deadline:   deadline,
	}

	router := common.HexToAddress(e.network.Router)
	if !q.TokenIn.IsNative {
		tokenIn := common.HexToAddress(q.TokenIn.Address)
		if err := e.ensureAllowance(ctx, signer, tokenIn, router, q.AmountIn, result); err != nil {
			return nil, err
		}
	}

	if err := e.submitSwap(ctx, signer, router, q, minimumOut, deadline, result); err != nil {
		return nil, err
	}

	if e.recorder != nil {
		_ = e.recorder.RecordSwap(Record{
			Timestamp:  e.now(),
			AmountIn:   amount.FormatUnits(q.AmountIn, q.TokenIn.Decimals),
			FromSymbol: q.TokenIn.Symbol,
			ToSymbol:   q.TokenOut.Symbol,
			MinimumOut: amount.FormatUnits(minimumOut, q.TokenOut.Decimals),
			TxHash:     result.TxHash.Hex(),
			ChainID:    e.network.ChainID,
		})
	}
	return result, nil
}

// ensureAllowance checks the router's allowance and, when it is short,
// approves exactly the input amount (never unlimited) and waits for the
// approval to confirm.
func (e *Executor) ensureAllowance(ctx context.Context, signer wallet.Signer, token, router common.Address, amountIn *big.Int, result *Result) error {
	account := signer.Address()

	allowance, err := e.client.Allowance(ctx, token, account, router)
	if err != nil {
		return &ApprovalError{Err: err}
	}
	if allowance.Cmp(amountIn) >= 0 {
		return nil
	}

	data, err := chain.PackApprove(router, amountIn)
	if err != nil {
		return &ApprovalError{Err: err}
	}

	tx, err := e.buildTx(ctx, account, token, big.NewInt(0), data, defaultApproveGasLimit)
	if err != nil {
		return &ApprovalError{Err: err}
	}
	signed, err := signer.SignTx(big.NewInt(e.network.ChainID), tx)
	if err != nil {
		return &ApprovalError{Err: err}
	}
	if err := e.client.SendTransaction(ctx, signed); err != nil {
		return &ApprovalError{TxHash: signed.Hash(), Err: err}
	}

	receipt, err := e.client.WaitMined(ctx, signed.Hash())
	if err != nil {
		return &ApprovalError{TxHash: signed.Hash(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &ApprovalError{TxHash: signed.Hash(), Err: errors.New("approval transaction reverted on-chain")}
	}

	result.Approved = true
	result.ApprovalTxHash = signed.Hash()
	return nil
}

// submitSwap assembles the exactInputSingle call and awaits its receipt. A
// native input swaps through the wrapped-native address and attaches the
// input amount as transaction value.
func (e *Executor) submitSwap(ctx context.Context, signer wallet.Signer, router common.Address, q *quote.Quote, minimumOut *big.Int, deadline int64, result *Result) error {
	account := signer.Address()

	tokenIn := common.HexToAddress(q.TokenIn.Address)
	value := big.NewInt(0)
	if q.TokenIn.IsNative {
		tokenIn = common.HexToAddress(e.network.WrappedNative)
		value = q.AmountIn
	}
	tokenOut := common.HexToAddress(q.TokenOut.Address)
	if q.TokenOut.IsNative {
		tokenOut = common.HexToAddress(e.network.WrappedNative)
	}

	data, err := chain.PackExactInputSingle(chain.ExactInputSingleParams{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		Fee:               big.NewInt(int64(q.Fee)),
		Recipient:         account,
		Deadline:          big.NewInt(deadline),
		AmountIn:          q.AmountIn,
		AmountOutMinimum:  minimumOut,
		SqrtPriceLimitX96: big.NewInt(0),
	})
	if err != nil {
		return &SwapError{Err: err}
	}

	tx, err := e.buildTx(ctx, account, router, value, data, defaultSwapGasLimit)
	if err != nil {
		return &SwapError{Err: err}
	}
	signed, err := signer.SignTx(big.NewInt(e.network.ChainID), tx)
	if err != nil {
		return &SwapError{Err: err}
	}
	if err := e.client.SendTransaction(ctx, signed); err != nil {
		// The node rejects reverting transactions at submission; the error
		// text carries the revert reason when the contract provides one.
		return &SwapError{TxHash: signed.Hash(), Reason: err.Error(), Err: err}
	}

	receipt, err := e.client.WaitMined(ctx, signed.Hash())
	if err != nil {
		return &SwapError{TxHash: signed.Hash(), Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &SwapError{TxHash: signed.Hash(), Err: errors.New("swap transaction reverted on-chain")}
	}

	result.TxHash = signed.Hash()
	result.Receipt = receipt
	return nil
}

// buildTx assembles an unsigned legacy transaction with the account's
// pending nonce and the suggested gas price. Gas is estimated with a 20%
// buffer, falling back to the given limit when estimation fails.
func (e *Executor) buildTx(ctx context.Context, from, to common.Address, value *big.Int, data []byte, fallbackGas uint64) (*types.Transaction, error) {
	nonce, err := e.client.PendingNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit := fallbackGas
	msg := ethereum.CallMsg{From: from, To: &to, Value: value, Data: data}
	if estimated, err := e.client.EstimateGas(ctx, msg); err == nil {
		gasLimit = estimated * 120 / 100
	}

	return types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data), nil
}
