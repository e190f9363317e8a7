package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/amount"
	"dex-swap/pkg/chain"
	"dex-swap/pkg/registry"
	"dex-swap/pkg/wallet"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show token balances for an address",
	Long: `Show the native and ERC-20 balances of an address on the selected
network. Without an argument, the address is derived from the configured
signing key.

A balance the RPC endpoint cannot serve is shown as "--"; an address the
chain has never seen reads as zero.

Examples:
  dex-swap balance
  dex-swap balance 0x1234...abcd --network mainnet`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
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

	var account common.Address
	if len(args) == 1 {
		if !common.IsHexAddress(args[0]) {
			printError(fmt.Errorf("invalid address: %s", args[0]))
			os.Exit(1)
		}
		account = common.HexToAddress(args[0])
	} else {
		if err := cfg.RequireSigner(); err != nil {
			printError(fmt.Errorf("no address given and %w", err))
			os.Exit(1)
		}
		provider, err := wallet.NewKeyProvider(cfg.PrivateKey, network)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		account = provider.Signer().Address()
	}

	client, err := chain.Dial(cfg.RPCURL(network))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	s := newSpinner("Fetching balances...")
	if !jsonOutput {
		s.Start()
	}

	ctx := context.Background()
	type entry struct {
		Token   registry.Token
		Balance string
	}
	entries := make([]entry, 0, len(network.Tokens))
	for _, token := range network.Tokens {
		balance := "--"
		if token.IsNative {
			if b, err := client.NativeBalance(ctx, account); err == nil {
				balance = amount.FormatUnits(b, token.Decimals)
			}
		} else {
			if b, err := client.TokenBalance(ctx, common.HexToAddress(token.Address), account); err == nil {
				balance = amount.FormatUnits(b, token.Decimals)
			}
		}
		entries = append(entries, entry{Token: token, Balance: balance})
	}

	if !jsonOutput {
		s.Stop()
	}

	if jsonOutput {
		output := map[string]interface{}{
			"address": account.Hex(),
			"network": network.Name,
		}
		balances := map[string]string{}
		for _, e := range entries {
			balances[e.Token.Symbol] = e.Balance
		}
		output["balances"] = balances
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	header("BALANCES", 60)
	fmt.Printf("\n  Address:  %s\n  Network:  %s\n\n", color.CyanString(account.Hex()), network.Name)
	for _, e := range entries {
		fmt.Printf("  %-8s  %s\n", color.YellowString(e.Token.Symbol), e.Balance)
	}
	fmt.Println()
	divider(60)
	fmt.Println()
}
