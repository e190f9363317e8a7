package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
)

var clearHistory bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the swap history",
	Long: `Show past swaps recorded on this machine, newest first. The log
keeps the 100 most recent entries.

Examples:
  dex-swap history
  dex-swap history --clear`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "Delete all history entries")
}

func runHistory(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	appStore, err := openStore(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if clearHistory {
		if err := appStore.ClearHistory(); err != nil {
			printError(err)
			os.Exit(1)
		}
		printSuccess("Swap history cleared.")
		return
	}

	entries := appStore.History()

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(entries) == 0 {
		fmt.Println("\nNo swaps recorded yet.")
		return
	}

	header("SWAP HISTORY", 80)
	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %s  %s %s -> min %s %s",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.AmountIn,
			color.YellowString(e.FromSymbol),
			e.MinimumOut,
			color.YellowString(e.ToSymbol))
		if e.TxHash != "" {
			fmt.Printf("  %s", color.HiBlackString(shortAddress(e.TxHash)))
		}
		fmt.Println()
	}
	fmt.Println()
	divider(80)
	fmt.Printf("\nTotal: %d swaps\n\n", len(entries))
}
