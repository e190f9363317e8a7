package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/amount"
	"dex-swap/pkg/chain"
	"dex-swap/pkg/registry"
)

var (
	watchTx       bool
	watchInterval int
)

var txCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "Check the status of a transaction",
	Long: `Check the status of a transaction by its hash on the selected network.

Examples:
  dex-swap tx 0x1234...abcd
  dex-swap tx 0x1234...abcd --watch
  dex-swap tx 0x1234...abcd --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runTx,
}

func init() {
	rootCmd.AddCommand(txCmd)

	txCmd.Flags().BoolVarP(&watchTx, "watch", "w", false, "Watch status updates until the transaction is mined")
	txCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runTx(cmd *cobra.Command, args []string) {
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

	txHash := common.HexToHash(args[0])
	if txHash == (common.Hash{}) {
		printError(fmt.Errorf("invalid transaction hash: %s", args[0]))
		os.Exit(1)
	}

	client, err := chain.Dial(cfg.RPCURL(network))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	if watchTx {
		watchTransaction(client, network, txHash, jsonOutput)
	} else {
		checkTransaction(client, network, txHash, jsonOutput)
	}
}

func checkTransaction(client *chain.Client, network *registry.Network, txHash common.Hash, jsonOutput bool) {
	s := newSpinner("Checking transaction...")
	if !jsonOutput {
		s.Start()
	}

	info, err := client.TransactionLookup(context.Background(), txHash)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayTransaction(info, network)
	}
}

func watchTransaction(client *chain.Client, network *registry.Network, txHash common.Hash, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching transaction %s\n", color.CyanString(txHash.Hex()))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	for {
		info, err := client.TransactionLookup(context.Background(), txHash)
		if err != nil {
			color.Red("Error: %v", err)
		} else {
			displayTransaction(info, network)
			if !info.Pending {
				return
			}
		}
		<-ticker.C
	}
}

func displayTransaction(info *chain.TransactionInfo, network *registry.Network) {
	header("TRANSACTION STATUS", 70)

	fmt.Printf("\n  Hash:     %s\n", color.CyanString(info.Hash))
	fmt.Printf("  Network:  %s\n", network.Name)
	fmt.Printf("  To:       %s\n", color.HiBlackString(info.To))
	fmt.Printf("  Value:    %s ETH\n", amount.FormatUnits(info.Value, 18))
	fmt.Printf("  Nonce:    %d\n", info.Nonce)

	if info.Pending {
		fmt.Printf("  Status:   %s\n", color.YellowString("PENDING"))
	} else {
		status := color.GreenString("SUCCESS")
		if !info.Succeeded {
			status = color.RedString("REVERTED")
		}
		fmt.Printf("  Status:   %s\n", status)
		fmt.Printf("  Block:    %d\n", info.BlockNumber)
		fmt.Printf("  Gas Used: %d / %d\n", info.GasUsed, info.GasLimit)
	}
	fmt.Printf("\n  Explorer: %s\n", network.ExplorerTxURL(info.Hash))

	fmt.Println()
	divider(70)
	fmt.Println()
}
