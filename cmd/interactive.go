package cmd

import (
	"strings"

	"github.com/manifoldco/promptui"

	"dex-swap/pkg/registry"
	"dex-swap/pkg/types"
)

// promptSwapCommand builds a swap request interactively when no command
// text is given. Token choices go through a PairSelection: picking the
// symbol already on the other side hands that side the previous value
// instead of leaving the same token twice.
func promptSwapCommand(network *registry.Network) (*types.SwapCommand, error) {
	symbols := make([]string, 0, len(network.Tokens))
	for _, token := range network.Tokens {
		symbols = append(symbols, token.Symbol)
	}

	pair := defaultPair(network)

	fromPrompt := promptui.Select{Label: "From token", Items: symbols}
	_, from, err := fromPrompt.Run()
	if err != nil {
		return nil, err
	}
	pair.SetFrom(from)

	toPrompt := promptui.Select{Label: "To token", Items: symbols}
	_, to, err := toPrompt.Run()
	if err != nil {
		return nil, err
	}
	pair.SetTo(to)

	amountPrompt := promptui.Prompt{Label: "Amount of " + pair.From()}
	amountText, err := amountPrompt.Run()
	if err != nil {
		return nil, err
	}

	return &types.SwapCommand{
		Amount:    strings.TrimSpace(amountText),
		FromToken: pair.From(),
		ToToken:   pair.To(),
	}, nil
}

// defaultPair starts from the native asset into USDC, falling back to the
// first two distinct tokens the network lists.
func defaultPair(network *registry.Network) *registry.PairSelection {
	from := network.Tokens[0].Symbol
	if native := network.NativeToken(); native != nil {
		from = native.Symbol
	}

	to := "USDC"
	if network.FindToken(to) == nil || strings.EqualFold(to, from) {
		for _, token := range network.Tokens {
			if !strings.EqualFold(token.Symbol, from) {
				to = token.Symbol
				break
			}
		}
	}
	return registry.NewPairSelection(from, to)
}
