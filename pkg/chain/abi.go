package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments for the contracts this tool calls into.

const erc20ABIJSON = `[
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

const quoterABIJSON = `[
	{"inputs":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"fee","type":"uint24"},
		{"name":"amountIn","type":"uint256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}],
	"name":"quoteExactInputSingle",
	"outputs":[{"name":"amountOut","type":"uint256"}],
	"stateMutability":"nonpayable","type":"function"}
]`

const factoryABIJSON = `[
	{"inputs":[
		{"name":"tokenA","type":"address"},
		{"name":"tokenB","type":"address"},
		{"name":"fee","type":"uint24"}],
	"name":"getPool",
	"outputs":[{"name":"pool","type":"address"}],
	"stateMutability":"view","type":"function"}
]`

const poolABIJSON = `[
	{"inputs":[],"name":"liquidity","outputs":[{"name":"","type":"uint128"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"fee","outputs":[{"name":"","type":"uint24"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token1","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"slot0","outputs":[
		{"name":"sqrtPriceX96","type":"uint160"},
		{"name":"tick","type":"int24"},
		{"name":"observationIndex","type":"uint16"},
		{"name":"observationCardinality","type":"uint16"},
		{"name":"observationCardinalityNext","type":"uint16"},
		{"name":"feeProtocol","type":"uint8"},
		{"name":"unlocked","type":"bool"}],
	"stateMutability":"view","type":"function"}
]`

const routerABIJSON = `[
	{"inputs":[{"components":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"fee","type":"uint24"},
		{"name":"recipient","type":"address"},
		{"name":"deadline","type":"uint256"},
		{"name":"amountIn","type":"uint256"},
		{"name":"amountOutMinimum","type":"uint256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}],
	"name":"params","type":"tuple"}],
	"name":"exactInputSingle",
	"outputs":[{"name":"amountOut","type":"uint256"}],
	"stateMutability":"payable","type":"function"}
]`

var (
	erc20ABI   = mustABI(erc20ABIJSON)
	quoterABI  = mustABI(quoterABIJSON)
	factoryABI = mustABI(factoryABIJSON)
	poolABI    = mustABI(poolABIJSON)
	routerABI  = mustABI(routerABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("chain: invalid ABI fragment: " + err.Error())
	}
	return parsed
}
