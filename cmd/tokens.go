package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/registry"
	"dex-swap/pkg/store"
)

var favoritesOnly bool

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List supported tokens",
	Long: `List the tokens supported on the selected network. Favorites are
marked with a star.

Examples:
  dex-swap tokens
  dex-swap tokens --network mainnet
  dex-swap tokens --favorites
  dex-swap tokens favorite LINK
  dex-swap tokens unfavorite LINK`,
	Run: runListTokens,
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <symbol>",
	Short: "Mark a token as favorite",
	Args:  cobra.ExactArgs(1),
	Run:   runFavorite,
}

var unfavoriteCmd = &cobra.Command{
	Use:   "unfavorite <symbol>",
	Short: "Remove a token from favorites",
	Args:  cobra.ExactArgs(1),
	Run:   runUnfavorite,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.AddCommand(favoriteCmd)
	tokensCmd.AddCommand(unfavoriteCmd)

	tokensCmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "Show only favorite tokens")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	network, err := resolveNetwork(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	appStore, err := openStore(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	tokens := network.Tokens
	if favoritesOnly {
		var filtered []registry.Token
		for _, t := range tokens {
			if appStore.IsFavorite(t.Symbol) {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(tokens, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayTokens(network, tokens, appStore)
}

func displayTokens(network *registry.Network, tokens []registry.Token, appStore *store.Store) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	header("SUPPORTED TOKENS", 80)
	color.Cyan("\n%s (chain %d)\n", network.Name, network.ChainID)

	for _, token := range tokens {
		address := token.Address
		if token.IsNative {
			address = "(native)"
		}
		star := "  "
		if appStore.IsFavorite(token.Symbol) {
			star = color.YellowString("★ ")
		}
		fmt.Printf("  %s%-8s  %-20s  %2d decimals  %s\n",
			star,
			color.YellowString(token.Symbol),
			token.Name,
			token.Decimals,
			color.HiBlackString(address))
	}

	fmt.Println()
	divider(80)
	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}

func runFavorite(cmd *cobra.Command, args []string) {
	mutateFavorite(cmd, args[0], true)
}

func runUnfavorite(cmd *cobra.Command, args []string) {
	mutateFavorite(cmd, args[0], false)
}

func mutateFavorite(cmd *cobra.Command, symbol string, add bool) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	network, err := resolveNetwork(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	token := network.FindToken(symbol)
	if token == nil {
		printError(fmt.Errorf("token '%s' not found on %s", symbol, network.Name))
		os.Exit(1)
	}

	appStore, err := openStore(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if add {
		err = appStore.AddFavorite(token.Symbol)
	} else {
		err = appStore.RemoveFavorite(token.Symbol)
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if add {
		printSuccess(fmt.Sprintf("%s added to favorites.", token.Symbol))
	} else {
		printSuccess(fmt.Sprintf("%s removed from favorites.", token.Symbol))
	}
}
