package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers contract calls from a selector-keyed response table.
type fakeBackend struct {
	balance     *big.Int
	balanceErr  error
	responses   map[string][]byte
	callErr     error
	gasPrice    *big.Int
	gasPriceErr error
	tipCap      *big.Int
	header      *types.Header

	tx        *types.Transaction
	txPending bool
	txErr     error
	receipt   *types.Receipt
}

func (f *fakeBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return f.balance, f.balanceErr
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	selector := hex.EncodeToString(msg.Data[:4])
	resp, ok := f.responses[selector]
	if !ok {
		return nil, errors.New("unexpected call")
	}
	return resp, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return f.gasPrice, f.gasPriceErr
}

func (f *fakeBackend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	if f.tipCap == nil {
		return nil, errors.New("not supported")
	}
	return f.tipCap, nil
}

func (f *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if f.header == nil {
		return nil, errors.New("not supported")
	}
	return f.header, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return nil
}

func (f *fakeBackend) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return f.tx, f.txPending, f.txErr
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

// word left-pads a value to one 32-byte ABI word.
func word(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

func addressWord(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), 32)
}

func TestBalances(t *testing.T) {
	t.Run("Native", func(t *testing.T) {
		backend := &fakeBackend{balance: big.NewInt(42)}
		client := NewClient(backend)

		balance, err := client.NativeBalance(context.Background(), common.Address{})
		require.NoError(t, err)
		assert.Equal(t, "42", balance.String())
	})

	t.Run("NativeFailureIsNetworkError", func(t *testing.T) {
		backend := &fakeBackend{balanceErr: errors.New("connection refused")}
		client := NewClient(backend)

		_, err := client.NativeBalance(context.Background(), common.Address{})
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, "balance lookup", netErr.Op)
	})

	t.Run("Token", func(t *testing.T) {
		backend := &fakeBackend{responses: map[string][]byte{
			// balanceOf(address)
			"70a08231": word(big.NewInt(1_500_000)),
		}}
		client := NewClient(backend)

		balance, err := client.TokenBalance(context.Background(), common.Address{}, common.Address{})
		require.NoError(t, err)
		assert.Equal(t, "1500000", balance.String())
	})

	t.Run("Allowance", func(t *testing.T) {
		backend := &fakeBackend{responses: map[string][]byte{
			// allowance(address,address)
			"dd62ed3e": word(big.NewInt(777)),
		}}
		client := NewClient(backend)

		allowance, err := client.Allowance(context.Background(), common.Address{}, common.Address{}, common.Address{})
		require.NoError(t, err)
		assert.Equal(t, "777", allowance.String())
	})
}

func TestFeeEstimate(t *testing.T) {
	t.Run("FullData", func(t *testing.T) {
		backend := &fakeBackend{
			gasPrice: big.NewInt(30_000_000_000),
			tipCap:   big.NewInt(2_000_000_000),
			header:   &types.Header{BaseFee: big.NewInt(25_000_000_000)},
		}
		client := NewClient(backend)

		est := client.FeeEstimate(context.Background())
		require.NotNil(t, est)
		assert.Equal(t, "30000000000", est.GasPrice.String())
		assert.Equal(t, "2000000000", est.PriorityFee.String())
		assert.Equal(t, "25000000000", est.BaseFee.String())
	})

	t.Run("NilOnFailure", func(t *testing.T) {
		backend := &fakeBackend{gasPriceErr: errors.New("unavailable")}
		client := NewClient(backend)
		assert.Nil(t, client.FeeEstimate(context.Background()))
	})
}

func TestUniswapReads(t *testing.T) {
	pool := common.HexToAddress("0x0000000000000000000000000000000000000123")

	t.Run("PoolAddress", func(t *testing.T) {
		backend := &fakeBackend{responses: map[string][]byte{
			// getPool(address,address,uint24)
			"1698ee82": addressWord(pool),
		}}
		client := NewClient(backend)

		got, err := client.PoolAddress(context.Background(), common.Address{}, common.Address{}, common.Address{}, 3000)
		require.NoError(t, err)
		assert.Equal(t, pool, got)
	})

	t.Run("QuoteExactInputSingle", func(t *testing.T) {
		backend := &fakeBackend{responses: map[string][]byte{
			// quoteExactInputSingle(address,address,uint24,uint256,uint160)
			"f7729d43": word(big.NewInt(1_800_000_000)),
		}}
		client := NewClient(backend)

		out, err := client.QuoteExactInputSingle(context.Background(), common.Address{}, common.Address{}, common.Address{}, 500, big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, "1800000000", out.String())
	})

	t.Run("PoolLiquidity", func(t *testing.T) {
		backend := &fakeBackend{responses: map[string][]byte{
			// liquidity()
			"1a686502": word(big.NewInt(999_999)),
		}}
		client := NewClient(backend)

		liq, err := client.PoolLiquidity(context.Background(), pool)
		require.NoError(t, err)
		assert.Equal(t, "999999", liq.String())
	})
}

func TestPacking(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		data, err := PackApprove(common.Address{}, big.NewInt(1000))
		require.NoError(t, err)
		// approve(address,uint256) selector.
		assert.Equal(t, "095ea7b3", hex.EncodeToString(data[:4]))
		assert.Len(t, data, 4+32+32)
	})

	t.Run("ExactInputSingle", func(t *testing.T) {
		data, err := PackExactInputSingle(ExactInputSingleParams{
			Fee:               big.NewInt(3000),
			Deadline:          big.NewInt(1),
			AmountIn:          big.NewInt(2),
			AmountOutMinimum:  big.NewInt(3),
			SqrtPriceLimitX96: big.NewInt(0),
		})
		require.NoError(t, err)
		// exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))
		assert.Equal(t, "414bf389", hex.EncodeToString(data[:4]))
		assert.Len(t, data, 4+8*32)
	})
}

func TestTransactionLookup(t *testing.T) {
	to := common.HexToAddress("0x0000000000000000000000000000000000000abc")
	tx := types.NewTransaction(3, to, big.NewInt(10), 21000, big.NewInt(1), nil)

	t.Run("Pending", func(t *testing.T) {
		backend := &fakeBackend{tx: tx, txPending: true}
		client := NewClient(backend)

		info, err := client.TransactionLookup(context.Background(), tx.Hash())
		require.NoError(t, err)
		assert.True(t, info.Pending)
		assert.Equal(t, to.Hex(), info.To)
		assert.Equal(t, uint64(3), info.Nonce)
	})

	t.Run("Mined", func(t *testing.T) {
		backend := &fakeBackend{
			tx: tx,
			receipt: &types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(123),
				GasUsed:     21000,
			},
		}
		client := NewClient(backend)

		info, err := client.TransactionLookup(context.Background(), tx.Hash())
		require.NoError(t, err)
		assert.False(t, info.Pending)
		assert.True(t, info.Succeeded)
		assert.Equal(t, uint64(123), info.BlockNumber)
	})

	t.Run("NotFound", func(t *testing.T) {
		backend := &fakeBackend{txErr: ethereum.NotFound}
		client := NewClient(backend)

		_, err := client.TransactionLookup(context.Background(), common.Hash{})
		var netErr *NetworkError
		assert.ErrorAs(t, err, &netErr)
	})
}
