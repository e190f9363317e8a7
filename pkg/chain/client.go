package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the subset of the ethclient surface the tool uses. It exists so
// flows can be exercised against a fake in tests; *ethclient.Client
// satisfies it.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// FeeEstimate is a best-effort snapshot of current network fees.
type FeeEstimate struct {
	BaseFee     *big.Int
	PriorityFee *big.Int
	GasPrice    *big.Int
}

// receiptPollInterval is how often WaitMined re-checks for a receipt.
const receiptPollInterval = 2 * time.Second

// Client wraps a JSON-RPC connection to one network.
type Client struct {
	backend Backend
	closer  func()
}

// Dial connects to an RPC endpoint.
func Dial(rpcURL string) (*Client, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}
	return &Client{backend: ec, closer: ec.Close}, nil
}

// NewClient wraps an existing backend. Used by tests.
func NewClient(backend Backend) *Client {
	return &Client{backend: backend}
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// NativeBalance returns the native asset balance of an address. An address
// the chain has never seen reports zero; that case is not distinguishable
// from a genuinely empty account.
func (c *Client) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := c.backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, netErr("balance lookup", err)
	}
	return balance, nil
}

// TokenBalance returns the ERC-20 balance of an address.
func (c *Client) TokenBalance(ctx context.Context, token, account common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, token, erc20ABI, "balanceOf", account)
	if err != nil {
		return nil, netErr("token balance lookup", err)
	}
	return out[0].(*big.Int), nil
}

// Allowance returns how much of token the spender may move on owner's behalf.
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, token, erc20ABI, "allowance", owner, spender)
	if err != nil {
		return nil, netErr("allowance lookup", err)
	}
	return out[0].(*big.Int), nil
}

// FeeEstimate returns current fee data. Gas display is cosmetic, so failures
// yield nil rather than an error.
func (c *Client) FeeEstimate(ctx context.Context) *FeeEstimate {
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil
	}
	est := &FeeEstimate{GasPrice: gasPrice}
	if tip, err := c.backend.SuggestGasTipCap(ctx); err == nil {
		est.PriorityFee = tip
	}
	if header, err := c.backend.HeaderByNumber(ctx, nil); err == nil && header.BaseFee != nil {
		est.BaseFee = header.BaseFee
	}
	return est
}

// Call performs a read-only contract call and unpacks the result.
func (c *Client) Call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}
	result, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	out, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// PendingNonce returns the next nonce for an account, including pending txs.
func (c *Client) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, netErr("nonce lookup", err)
	}
	return nonce, nil
}

// SuggestGasPrice returns the network's suggested gas price.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, netErr("gas price lookup", err)
	}
	return price, nil
}

// EstimateGas estimates the gas limit for a call.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.backend.EstimateGas(ctx, msg)
}

// SendTransaction broadcasts a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}
	return nil
}

// WaitMined blocks until the transaction is mined or the context ends.
func (c *Client) WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// TransactionInfo describes a transaction's current state for display.
type TransactionInfo struct {
	Hash        string
	Nonce       uint64
	To          string
	Value       *big.Int
	GasLimit    uint64
	GasPrice    *big.Int
	Pending     bool
	BlockNumber uint64
	GasUsed     uint64
	Succeeded   bool
}

// TransactionLookup fetches a transaction and, when mined, its receipt.
func (c *Client) TransactionLookup(ctx context.Context, txHash common.Hash) (*TransactionInfo, error) {
	tx, isPending, err := c.backend.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, netErr("transaction lookup", err)
	}

	info := &TransactionInfo{
		Hash:     tx.Hash().Hex(),
		Nonce:    tx.Nonce(),
		Value:    tx.Value(),
		GasLimit: tx.Gas(),
		GasPrice: tx.GasPrice(),
		Pending:  isPending,
	}
	if tx.To() != nil {
		info.To = tx.To().Hex()
	}

	if !isPending {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err != nil {
			return nil, netErr("receipt lookup", err)
		}
		info.BlockNumber = receipt.BlockNumber.Uint64()
		info.GasUsed = receipt.GasUsed
		info.Succeeded = receipt.Status == types.ReceiptStatusSuccessful
	}

	return info, nil
}
