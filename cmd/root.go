package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/registry"
	"dex-swap/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "dex-swap",
	Short: "A CLI for Uniswap v3 token swaps on Ethereum",
	Long: `dex-swap is a command-line tool for single-hop token swaps through
Uniswap v3 on Ethereum Mainnet and Sepolia. It quotes every available fee
tier, picks the best output, and submits the swap with slippage protection
and a deadline.

Examples:
  dex-swap quote 1 ETH to USDC
  dex-swap swap 0.5 WETH to DAI --slippage 0.5
  dex-swap tokens --network mainnet
  dex-swap balance 0x1234...abcd
  dex-swap history`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "sepolia", "Network to use (name or chain ID)")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

// resolveNetwork matches the --network flag against the registry by chain ID
// or by a case-insensitive name fragment.
func resolveNetwork(cmd *cobra.Command) (*registry.Network, error) {
	name, _ := cmd.Flags().GetString("network")
	name = strings.TrimSpace(name)

	if chainID, err := strconv.ParseInt(name, 10, 64); err == nil {
		if n := registry.FindNetwork(chainID); n != nil {
			return n, nil
		}
		return nil, fmt.Errorf("unsupported chain ID: %d", chainID)
	}

	for _, n := range registry.Networks() {
		if strings.Contains(strings.ToLower(n.Name), strings.ToLower(name)) {
			return n, nil
		}
	}
	return nil, fmt.Errorf("unknown network '%s' (try 'mainnet' or 'sepolia')", name)
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	return s
}

func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.StatePath)
}

func shortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func divider(width int) {
	fmt.Println(strings.Repeat("=", width))
}

func header(title string, width int) {
	fmt.Println()
	divider(width)
	color.Green("%s", centered(title, width))
	divider(width)
}

func centered(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
