package registry

import "strings"

// Token describes a swappable asset on a specific network.
// Address is the hex contract address, empty for the chain's native asset.
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
	IsNative bool   `json:"is_native"`
}

// Network describes a supported chain and its Uniswap v3 deployment.
type Network struct {
	Name          string  `json:"name"`
	ChainID       int64   `json:"chain_id"`
	RPCURL        string  `json:"rpc_url"`
	Router        string  `json:"router"`
	Quoter        string  `json:"quoter"`
	Factory       string  `json:"factory"`
	WrappedNative string  `json:"wrapped_native"`
	IsTestnet     bool    `json:"is_testnet"`
	BlockExplorer string  `json:"block_explorer"`
	Tokens        []Token `json:"tokens"`
}

// Networks returns the supported networks in display order.
func Networks() []*Network {
	return networks
}

// FindNetwork returns the network with the given chain ID, or nil.
func FindNetwork(chainID int64) *Network {
	for _, n := range networks {
		if n.ChainID == chainID {
			return n
		}
	}
	return nil
}

// FindToken returns the token with the given symbol on this network, or nil.
// Matching is case-insensitive.
func (n *Network) FindToken(symbol string) *Token {
	for i := range n.Tokens {
		if strings.EqualFold(n.Tokens[i].Symbol, symbol) {
			return &n.Tokens[i]
		}
	}
	return nil
}

// FindTokenByAddress returns the token with the given contract address on
// this network, or nil. The native token matches the empty address.
func (n *Network) FindTokenByAddress(address string) *Token {
	for i := range n.Tokens {
		t := &n.Tokens[i]
		if t.IsNative && address == "" {
			return t
		}
		if !t.IsNative && strings.EqualFold(t.Address, address) {
			return t
		}
	}
	return nil
}

// NativeToken returns the network's native asset, or nil.
func (n *Network) NativeToken() *Token {
	for i := range n.Tokens {
		if n.Tokens[i].IsNative {
			return &n.Tokens[i]
		}
	}
	return nil
}

// ExplorerTxURL returns the block explorer URL for a transaction hash.
func (n *Network) ExplorerTxURL(txHash string) string {
	return n.BlockExplorer + "/tx/" + txHash
}
