package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/pkg/registry"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks",
	Run:   runListNetworks,
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

func runListNetworks(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	networks := registry.Networks()

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(networks, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	header("SUPPORTED NETWORKS", 70)
	for _, n := range networks {
		label := ""
		if n.IsTestnet {
			label = color.MagentaString(" (testnet)")
		}
		color.Cyan("\n%s%s", n.Name, label)
		fmt.Printf("  Chain ID:  %d\n", n.ChainID)
		fmt.Printf("  Router:    %s\n", color.HiBlackString(n.Router))
		fmt.Printf("  Quoter:    %s\n", color.HiBlackString(n.Quoter))
		fmt.Printf("  Factory:   %s\n", color.HiBlackString(n.Factory))
		fmt.Printf("  Explorer:  %s\n", n.BlockExplorer)
		fmt.Printf("  Tokens:    %d\n", len(n.Tokens))
	}
	fmt.Println()
	divider(70)
	fmt.Println()
}
