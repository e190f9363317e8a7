package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ExactInputSingleParams mirrors the router's exactInputSingle argument tuple.
type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// PoolAddress resolves the pool for a token pair and fee tier via the
// factory. The zero address means no pool is registered for that tier.
func (c *Client) PoolAddress(ctx context.Context, factory, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	out, err := c.Call(ctx, factory, factoryABI, "getPool", tokenA, tokenB, big.NewInt(int64(fee)))
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// QuoteExactInputSingle simulates a single-hop exact-input swap through the
// quoting contract without committing state. No price limit is applied.
func (c *Client) QuoteExactInputSingle(ctx context.Context, quoter, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {
	out, err := c.Call(ctx, quoter, quoterABI, "quoteExactInputSingle",
		tokenIn, tokenOut, big.NewInt(int64(fee)), amountIn, big.NewInt(0))
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// PoolLiquidity returns the pool's current in-range liquidity.
func (c *Client) PoolLiquidity(ctx context.Context, pool common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, pool, poolABI, "liquidity")
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// PackApprove encodes an ERC-20 approve(spender, amount) call.
func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	data, err := erc20ABI.Pack("approve", spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack approve data: %w", err)
	}
	return data, nil
}

// PackExactInputSingle encodes the router's exactInputSingle(params) call.
func PackExactInputSingle(params ExactInputSingleParams) ([]byte, error) {
	data, err := routerABI.Pack("exactInputSingle", params)
	if err != nil {
		return nil, fmt.Errorf("failed to pack swap data: %w", err)
	}
	return data, nil
}
