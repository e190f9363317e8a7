package registry

// Supported networks. Router is SwapRouter02, quoter is QuoterV2 and factory
// is the canonical UniswapV3Factory deployment for each chain. The list order
// is the display order.
var networks = []*Network{
	{
		Name:          "Ethereum Sepolia",
		ChainID:       11155111,
		RPCURL:        "https://ethereum-sepolia-rpc.publicnode.com",
		Router:        "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		Quoter:        "0xEd1f6473345F45b75F8179591dd5bA1888cf2FB3",
		Factory:       "0x0227628f3F023bb0B980b67D528571c95c6DaC1c",
		WrappedNative: "0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14",
		IsTestnet:     true,
		BlockExplorer: "https://sepolia.etherscan.io",
		Tokens: []Token{
			{Symbol: "ETH", Name: "Ethereum", Address: "", Decimals: 18, IsNative: true},
			{Symbol: "USDC", Name: "USD Coin", Address: "0x65aFADD39029741B3b8f0756952C74678c9cEC93", Decimals: 6},
			{Symbol: "WETH", Name: "Wrapped Ethereum", Address: "0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14", Decimals: 18},
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x3e622317f8C93f7328350cF0B56d9eD4C620C5d6", Decimals: 18},
		},
	},
	{
		Name:          "Ethereum Mainnet",
		ChainID:       1,
		RPCURL:        "https://ethereum-rpc.publicnode.com",
		Router:        "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		Quoter:        "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		Factory:       "0x1F98431c8aD98523631AE4a59f267346ea31F984",
		WrappedNative: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		IsTestnet:     false,
		BlockExplorer: "https://etherscan.io",
		Tokens: []Token{
			{Symbol: "ETH", Name: "Ethereum", Address: "", Decimals: 18, IsNative: true},
			{Symbol: "USDC", Name: "USD Coin", Address: "0xA0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6},
			{Symbol: "WETH", Name: "Wrapped Ethereum", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18},
			{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
			{Symbol: "WBTC", Name: "Wrapped BTC", Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Decimals: 8},
			{Symbol: "USDT", Name: "Tether USD", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
			{Symbol: "LINK", Name: "Chainlink", Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Decimals: 18},
			{Symbol: "UNI", Name: "Uniswap", Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Decimals: 18},
		},
	},
}
