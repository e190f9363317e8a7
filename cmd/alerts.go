package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/store"
)

var alertDirection string

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage client-local price alerts",
	Long: `Manage price alerts. Alerts live only in this machine's state file;
nothing watches them on a server.

Examples:
  dex-swap alerts list
  dex-swap alerts add ETH 4000 --direction above
  dex-swap alerts toggle <id>
  dex-swap alerts remove <id>`,
	Run: func(cmd *cobra.Command, args []string) { runAlertsList(cmd, args) },
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List price alerts",
	Run:   runAlertsList,
}

var alertsAddCmd = &cobra.Command{
	Use:   "add <symbol> <price>",
	Short: "Add a price alert",
	Args:  cobra.ExactArgs(2),
	Run:   runAlertsAdd,
}

var alertsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a price alert",
	Args:  cobra.ExactArgs(1),
	Run:   runAlertsRemove,
}

var alertsToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Enable or disable a price alert",
	Args:  cobra.ExactArgs(1),
	Run:   runAlertsToggle,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd, alertsAddCmd, alertsRemoveCmd, alertsToggleCmd)

	alertsAddCmd.Flags().StringVar(&alertDirection, "direction", "above", "Trigger direction: above or below")
}

func mustOpenStore() *store.Store {
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
	return appStore
}

func runAlertsList(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	alerts := mustOpenStore().Alerts()

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(alerts, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if len(alerts) == 0 {
		fmt.Println("\nNo price alerts configured.")
		return
	}

	header("PRICE ALERTS", 70)
	fmt.Println()
	for _, a := range alerts {
		state := color.GreenString("active")
		if !a.Active {
			state = color.HiBlackString("paused")
		}
		fmt.Printf("  %s  %s %s %.2f  [%s]\n",
			color.HiBlackString(a.ID),
			color.YellowString(a.Symbol),
			a.Direction,
			a.TargetPrice,
			state)
	}
	fmt.Println()
	divider(70)
	fmt.Println()
}

func runAlertsAdd(cmd *cobra.Command, args []string) {
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil || price <= 0 {
		printError(fmt.Errorf("invalid price: %s", args[1]))
		os.Exit(1)
	}

	id, err := mustOpenStore().AddAlert(args[0], price, alertDirection)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Alert created: %s", id))
}

func runAlertsRemove(cmd *cobra.Command, args []string) {
	if err := mustOpenStore().RemoveAlert(args[0]); err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess("Alert removed.")
}

func runAlertsToggle(cmd *cobra.Command, args []string) {
	if err := mustOpenStore().ToggleAlert(args[0]); err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess("Alert toggled.")
}
