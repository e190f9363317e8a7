package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dex-swap/config"
	"dex-swap/pkg/amount"
	"dex-swap/pkg/chain"
	"dex-swap/pkg/parser"
	"dex-swap/pkg/quote"
	"dex-swap/pkg/registry"
	"dex-swap/pkg/types"
)

var (
	quoteWatch         bool
	quoteWatchInterval int
)

var quoteCmd = &cobra.Command{
	Use:   "quote [<amount> <from-token> to <to-token>]",
	Short: "Get an indicative swap quote",
	Long: `Probe every Uniswap v3 fee tier for the pair and show the best
indicative quote: output amount, unit price, fee tier, price impact and the
minimum received under the default slippage tolerance.

Without arguments, the pair and amount are selected interactively. A quote
is non-binding; nothing is submitted on-chain.

Examples:
  dex-swap quote 1 ETH to USDC
  dex-swap quote 250 DAI to WETH --network mainnet
  dex-swap quote 1 ETH to USDC --watch --interval 10
  dex-swap quote`,
	Args: cobra.ArbitraryArgs,
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVarP(&quoteWatch, "watch", "w", false, "Refresh the quote continuously")
	quoteCmd.Flags().IntVar(&quoteWatchInterval, "interval", 5, "Refresh interval in seconds (when watching)")
}

func runQuote(cmd *cobra.Command, args []string) {
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

	client, err := chain.Dial(cfg.RPCURL(network))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()
	engine := quote.NewEngine(client, network)

	if quoteWatch {
		if jsonOutput {
			fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
			os.Exit(1)
		}
		watchQuotes(engine, client, network, fromToken, toToken, amountIn, cfg.DefaultSlippage)
		return
	}

	s := newSpinner("Fetching quote...")
	if !jsonOutput {
		s.Start()
	}

	best, err := engine.BestQuote(ctx, fromToken, toToken, amountIn)

	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	slippagePct := cfg.DefaultSlippage
	minimumOut, err := amount.ApplySlippage(best.AmountOut, slippagePct/100)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	fees := client.FeeEstimate(ctx)

	if jsonOutput {
		output := map[string]interface{}{
			"network":      network.Name,
			"amount_in":    amount.FormatUnits(best.AmountIn, fromToken.Decimals),
			"from_token":   fromToken.Symbol,
			"amount_out":   amount.FormatUnits(best.AmountOut, toToken.Decimals),
			"to_token":     toToken.Symbol,
			"unit_price":   best.UnitPrice,
			"fee_tier":     best.FeeLabel,
			"price_impact": best.PriceImpact,
			"minimum_out":  amount.FormatUnits(minimumOut, toToken.Decimals),
			"slippage_pct": slippagePct,
			"pool_address": best.Pool.Hex(),
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayQuote(best, minimumOut, slippagePct, network, fees)
}

// watchQuotes refreshes the quote on an interval. Requests go through a
// Fetcher, so when a quote call outlasts the interval the newer request
// wins and the late result is dropped rather than shown out of order.
func watchQuotes(engine *quote.Engine, client *chain.Client, network *registry.Network, fromToken, toToken *registry.Token, amountIn *big.Int, slippagePct float64) {
	fmt.Printf("\nWatching %s/%s quotes on %s. Press Ctrl+C to stop.\n",
		fromToken.Symbol, toToken.Symbol, network.Name)

	type outcome struct {
		q   *quote.Quote
		err error
	}
	results := make(chan outcome, 1)
	deliver := func(q *quote.Quote, err error) { results <- outcome{q, err} }

	fetcher := quote.NewFetcher(engine)
	defer fetcher.Stop()

	ctx := context.Background()
	fetcher.Fetch(ctx, fromToken, toToken, amountIn, deliver)

	ticker := time.NewTicker(time.Duration(quoteWatchInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case r := <-results:
			if r.err != nil {
				color.Red("Error: %v", r.err)
				continue
			}
			minimumOut, err := amount.ApplySlippage(r.q.AmountOut, slippagePct/100)
			if err != nil {
				printError(err)
				os.Exit(1)
			}
			displayQuote(r.q, minimumOut, slippagePct, network, client.FeeEstimate(ctx))
		case <-ticker.C:
			fetcher.Fetch(ctx, fromToken, toToken, amountIn, deliver)
		}
	}
}

func displayQuote(q *quote.Quote, minimumOut *big.Int, slippagePct float64, network *registry.Network, fees *chain.FeeEstimate) {
	header("SWAP QUOTE", 60)

	fmt.Printf("\n  Network:          %s\n", network.Name)
	fmt.Printf("  From:             %s %s\n",
		amount.FormatUnits(q.AmountIn, q.TokenIn.Decimals), color.YellowString(q.TokenIn.Symbol))
	fmt.Printf("  To:               ~%s %s\n",
		amount.FormatUnits(q.AmountOut, q.TokenOut.Decimals), color.YellowString(q.TokenOut.Symbol))
	fmt.Printf("  Unit Price:       1 %s = %.6f %s\n", q.TokenIn.Symbol, q.UnitPrice, q.TokenOut.Symbol)
	fmt.Printf("  Fee Tier:         %s\n", q.FeeLabel)
	fmt.Printf("  Price Impact:     %s\n", formatImpact(q.PriceImpact))
	fmt.Printf("  Min. Received:    %s %s (%.2f%% slippage)\n",
		amount.FormatUnits(minimumOut, q.TokenOut.Decimals), q.TokenOut.Symbol, slippagePct)
	fmt.Printf("  Pool:             %s\n", color.HiBlackString(q.Pool.Hex()))

	if fees != nil && fees.GasPrice != nil {
		// Rough single-swap cost preview at ~150k gas.
		cost := new(big.Int).Mul(fees.GasPrice, big.NewInt(150000))
		fmt.Printf("  Est. Gas Cost:    ~%s ETH\n", amount.FormatUnits(cost, 18))
	} else {
		fmt.Printf("  Est. Gas Cost:    --\n")
	}

	fmt.Println()
	divider(60)
	fmt.Println()
}

func formatImpact(impact float64) string {
	text := fmt.Sprintf("%.2f%%", impact)
	switch {
	case impact >= 5:
		return color.RedString(text)
	case impact >= 1:
		return color.YellowString(text)
	default:
		return text
	}
}
