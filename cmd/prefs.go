package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"dex-swap/pkg/store"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long: `Show or change the preferences stored on this machine.

Settable keys:
  slippage        default slippage tolerance in percent (e.g. 0.5)
  deadline        transaction deadline in minutes
  impact-warning  warn before high price impact swaps (true/false)
  notifications   enable notifications (true/false)
  currency        preferred display currency (e.g. USD)
  language        interface language code (e.g. en)
  theme           dark or light
  developer-mode  expose developer output (true/false)

Examples:
  dex-swap prefs
  dex-swap prefs set slippage 1.0
  dex-swap prefs set theme light
  dex-swap prefs reset`,
	Run: runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a preference",
	Args:  cobra.ExactArgs(2),
	Run:   runPrefsSet,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all local state to defaults",
	Run:   runPrefsReset,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSetCmd, prefsResetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	appStore := mustOpenStore()
	prefs := appStore.Preferences()

	if jsonOutput {
		output := map[string]interface{}{
			"preferences":   prefs,
			"darkMode":      appStore.DarkMode(),
			"developerMode": appStore.DeveloperMode(),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	theme := "dark"
	if !appStore.DarkMode() {
		theme = "light"
	}

	header("PREFERENCES", 60)
	fmt.Println()
	fmt.Printf("  Slippage:        %.2f%%\n", prefs.DefaultSlippage)
	fmt.Printf("  Deadline:        %d minutes\n", prefs.DeadlineMinutes)
	fmt.Printf("  Impact warning:  %v\n", prefs.ShowPriceImpactWarning)
	fmt.Printf("  Notifications:   %v\n", prefs.EnableNotifications)
	fmt.Printf("  Currency:        %s\n", prefs.PreferredCurrency)
	fmt.Printf("  Language:        %s\n", prefs.Language)
	fmt.Printf("  Theme:           %s\n", theme)
	fmt.Printf("  Developer mode:  %v\n", appStore.DeveloperMode())
	fmt.Println()
	divider(60)
	fmt.Println()
}

func runPrefsSet(cmd *cobra.Command, args []string) {
	key, value := args[0], args[1]
	appStore := mustOpenStore()

	var err error
	switch key {
	case "slippage":
		var slippage float64
		slippage, err = strconv.ParseFloat(value, 64)
		if err != nil || slippage < 0 || slippage >= 100 {
			printError(fmt.Errorf("slippage must be a percentage in [0, 100)"))
			os.Exit(1)
		}
		err = appStore.UpdatePreferences(func(p *store.Preferences) { p.DefaultSlippage = slippage })
	case "deadline":
		var minutes int
		minutes, err = strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			printError(fmt.Errorf("deadline must be a positive number of minutes"))
			os.Exit(1)
		}
		err = appStore.UpdatePreferences(func(p *store.Preferences) { p.DeadlineMinutes = minutes })
	case "impact-warning":
		err = setBoolPref(appStore, value, func(p *store.Preferences, v bool) { p.ShowPriceImpactWarning = v })
	case "notifications":
		err = setBoolPref(appStore, value, func(p *store.Preferences, v bool) { p.EnableNotifications = v })
	case "currency":
		err = appStore.UpdatePreferences(func(p *store.Preferences) { p.PreferredCurrency = value })
	case "language":
		err = appStore.UpdatePreferences(func(p *store.Preferences) { p.Language = value })
	case "theme":
		switch value {
		case "dark":
			err = appStore.SetDarkMode(true)
		case "light":
			err = appStore.SetDarkMode(false)
		default:
			printError(fmt.Errorf("theme must be 'dark' or 'light'"))
			os.Exit(1)
		}
	case "developer-mode":
		var enabled bool
		enabled, err = strconv.ParseBool(value)
		if err != nil {
			printError(fmt.Errorf("developer-mode must be true or false"))
			os.Exit(1)
		}
		err = appStore.SetDeveloperMode(enabled)
	default:
		printError(fmt.Errorf("unknown preference key: %s", key))
		os.Exit(1)
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("%s updated.", key))
}

func setBoolPref(appStore *store.Store, value string, apply func(*store.Preferences, bool)) error {
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value must be true or false")
	}
	return appStore.UpdatePreferences(func(p *store.Preferences) { apply(p, enabled) })
}

func runPrefsReset(cmd *cobra.Command, args []string) {
	prompt := promptui.Prompt{
		Label:     "Reset all preferences, favorites, alerts and history",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		color.Yellow("\nReset cancelled.")
		return
	}

	if err := mustOpenStore().Reset(); err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess("Local state reset to defaults.")
}
