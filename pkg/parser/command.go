package parser

import (
	"fmt"
	"regexp"
	"strings"

	"dex-swap/pkg/types"
)

// Pattern: <amount> <from_token> TO <to_token>
// Matches: "1 ETH TO USDC", "1.5 WETH TO DAI", "100.25 USDC TO WBTC"
var commandPattern = regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9]+)$`)

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 1 ETH to USDC"
//   - "1.5 WETH to DAI"
//   - "100 USDC to WBTC"
func ParseSwapCommand(command string) (*types.SwapCommand, error) {
	// Normalize the command
	command = strings.TrimSpace(strings.ToUpper(command))
	command = strings.TrimPrefix(command, "SWAP ")
	command = strings.TrimPrefix(command, "QUOTE ")

	matches := commandPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: '<amount> <token> to <token>' (e.g., '1 ETH to USDC')")
	}

	return &types.SwapCommand{
		Amount:    matches[1],
		FromToken: matches[2],
		ToToken:   matches[3],
	}, nil
}

// ValidateSwapCommand validates that a parsed command has all required
// fields and does not name the same token on both sides.
func ValidateSwapCommand(cmd *types.SwapCommand) error {
	if cmd.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if cmd.FromToken == "" {
		return fmt.Errorf("source token is required")
	}
	if cmd.ToToken == "" {
		return fmt.Errorf("destination token is required")
	}
	if strings.EqualFold(cmd.FromToken, cmd.ToToken) {
		return fmt.Errorf("source and destination tokens must differ")
	}
	return nil
}
