package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/amount"
	"dex-swap/pkg/chain"
	"dex-swap/pkg/parser"
	"dex-swap/pkg/quote"
	"dex-swap/pkg/store"
	"dex-swap/pkg/swap"
	"dex-swap/pkg/types"
	"dex-swap/pkg/wallet"
)

var (
	swapSlippage float64
	swapDeadline int
	noConfirm    bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <from-token> to <to-token>",
	Short: "Execute a token swap",
	Long: `Swap tokens through Uniswap v3: quote every fee tier, pick the best
output, then submit an exact-input swap bounded by your slippage tolerance
and deadline.

For ERC-20 inputs, a separate approval transaction for exactly the swap
amount is submitted first when the router's allowance is short, and its
confirmation is awaited before the swap. No step is ever retried
automatically.

Without arguments, the pair and amount are selected interactively.

Examples:
  dex-swap swap 0.1 ETH to USDC
  dex-swap swap 100 DAI to WETH --slippage 1 --deadline 10
  dex-swap swap 0.5 WETH to USDC --network mainnet --yes
  dex-swap swap`,
	Args: cobra.ArbitraryArgs,
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().Float64Var(&swapSlippage, "slippage", 0, "Slippage tolerance in percent (default from preferences)")
	swapCmd.Flags().IntVar(&swapDeadline, "deadline", 0, "Transaction deadline in minutes (default from preferences)")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := cfg.RequireSigner(); err != nil {
		printError(err)
		os.Exit(1)
	}

	network, err := resolveNetwork(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var swapCmdline *types.SwapCommand
	if len(args) == 0 {
		swapCmdline, err = promptSwapCommand(network)
	} else {
		swapCmdline, err = parser.ParseSwapCommand(strings.Join(args, " "))
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := parser.ValidateSwapCommand(swapCmdline); err != nil {
		printError(err)
		os.Exit(1)
	}

	fromToken := network.FindToken(swapCmdline.FromToken)
	toToken := network.FindToken(swapCmdline.ToToken)
	if fromToken == nil || toToken == nil {
		printError(fmt.Errorf("unsupported pair %s/%s on %s (try 'dex-swap tokens')",
			swapCmdline.FromToken, swapCmdline.ToToken, network.Name))
		os.Exit(1)
	}

	amountIn, err := amount.ParseUnits(swapCmdline.Amount, fromToken.Decimals)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	appStore, err := openStore(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	prefs := appStore.Preferences()

	slippagePct := prefs.DefaultSlippage
	if cmd.Flags().Changed("slippage") {
		slippagePct = swapSlippage
	}
	deadlineMinutes := prefs.DeadlineMinutes
	if cmd.Flags().Changed("deadline") {
		deadlineMinutes = swapDeadline
	}
	if slippagePct < 0 || slippagePct >= 100 {
		printError(fmt.Errorf("slippage must be in [0, 100) percent"))
		os.Exit(1)
	}
	if deadlineMinutes <= 0 {
		printError(fmt.Errorf("deadline must be at least 1 minute"))
		os.Exit(1)
	}

	// Connect the wallet session before touching the chain.
	provider, err := wallet.NewKeyProvider(cfg.PrivateKey, network)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	session := wallet.NewSession(provider)

	ctx := context.Background()
	if err := session.Connect(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
	if session.ChainID() != network.ChainID {
		if err := session.SwitchNetwork(ctx, network.ChainID); err != nil {
			printError(err)
			os.Exit(1)
		}
	}
	account, _ := session.Account()

	client, err := chain.Dial(cfg.RPCURL(network))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	s := newSpinner("Fetching quote...")
	if !jsonOutput {
		s.Start()
	}

	engine := quote.NewEngine(client, network)
	best, err := engine.BestQuote(ctx, fromToken, toToken, amountIn)

	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		if verbose {
			fmt.Printf("\nDebug: quote failed: %v\n", err)
		}
		printError(err)
		os.Exit(1)
	}

	minimumOut, err := amount.ApplySlippage(best.AmountOut, slippagePct/100)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !jsonOutput {
		displayQuote(best, minimumOut, slippagePct, network, client.FeeEstimate(ctx))
		fmt.Printf("  Account:          %s\n", color.CyanString(account.Hex()))

		if prefs.ShowPriceImpactWarning && best.PriceImpact >= 5 {
			color.Yellow("\n  Warning: price impact is %.2f%%. Large trades move the pool price.\n", best.PriceImpact)
		}
	}

	if !noConfirm && !jsonOutput {
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	executor := swap.NewExecutor(client, network, session)
	executor.SetRecorder(swap.RecorderFunc(func(r swap.Record) error {
		return appStore.AddSwap(store.SwapRecord{
			Timestamp:  r.Timestamp,
			AmountIn:   r.AmountIn,
			FromSymbol: r.FromSymbol,
			ToSymbol:   r.ToSymbol,
			MinimumOut: r.MinimumOut,
			TxHash:     r.TxHash,
			ChainID:    r.ChainID,
		})
	}))

	if !jsonOutput {
		s = newSpinner("Submitting swap...")
		s.Start()
	}

	result, err := executor.Execute(ctx, best, slippagePct/100, deadlineMinutes)

	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		reportSwapFailure(err)
		os.Exit(1)
	}

	if jsonOutput {
		output := map[string]interface{}{
			"tx_hash":     result.TxHash.Hex(),
			"amount_in":   amount.FormatUnits(result.AmountIn, fromToken.Decimals),
			"from_token":  fromToken.Symbol,
			"minimum_out": amount.FormatUnits(result.MinimumOut, toToken.Decimals),
			"to_token":    toToken.Symbol,
			"deadline":    result.Deadline,
			"approved":    result.Approved,
			"status":      "confirmed",
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	if result.Approved {
		fmt.Printf("\n  Approval Tx:  %s\n", color.HiBlackString(result.ApprovalTxHash.Hex()))
	}
	color.Green("\n✓ Swap confirmed!")
	fmt.Printf("  Transaction:  %s\n", color.CyanString(result.TxHash.Hex()))
	fmt.Printf("  Explorer:     %s\n\n", network.ExplorerTxURL(result.TxHash.Hex()))
}

// reportSwapFailure distinguishes approval failures from swap failures, and
// surfaces revert reasons verbatim.
func reportSwapFailure(err error) {
	var approvalErr *swap.ApprovalError
	var swapErr *swap.SwapError

	switch {
	case errors.As(err, &approvalErr):
		color.Red("\n✗ Approval failed: %v", approvalErr.Err)
		if approvalErr.TxHash != (common.Hash{}) {
			fmt.Printf("  Transaction: %s\n", approvalErr.TxHash.Hex())
		}
		fmt.Println("  The swap was not submitted. Re-run the command to retry.")
	case errors.As(err, &swapErr):
		color.Red("\n✗ Swap failed: %v", swapErr.Err)
		if swapErr.Reason != "" {
			fmt.Printf("  Reason: %s\n", swapErr.Reason)
		}
		if swapErr.TxHash != (common.Hash{}) {
			fmt.Printf("  Transaction: %s\n", swapErr.TxHash.Hex())
		}
		fmt.Println("  Nothing is retried automatically. Re-run the command to retry.")
	case errors.Is(err, wallet.ErrUserRejected):
		fmt.Println("\nSwap cancelled.")
	default:
		printError(err)
	}
}

func confirmSwap() bool {
	prompt := promptui.Prompt{
		Label:     "Proceed with swap",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		return false
	}
	return true
}
