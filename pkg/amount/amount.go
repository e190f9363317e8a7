// Package amount converts between human-readable decimal strings and
// base-unit integer amounts at a token's decimal precision.
package amount

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseUnits converts a decimal string ("1.5") to base units at the given
// precision. Fractional digits beyond the precision are rejected rather
// than silently truncated.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}

	whole := value
	frac := ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole, frac = value[:i], value[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", value, decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	result, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount format: %s", value)
	}
	if result.Sign() < 0 {
		return nil, fmt.Errorf("amount must be positive: %s", value)
	}
	return result, nil
}

// FormatUnits renders a base-unit amount as a decimal string at the given
// precision, with trailing fractional zeros trimmed.
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	neg := value.Sign() < 0
	digits := new(big.Int).Abs(value).String()

	if len(digits) <= int(decimals) {
		digits = strings.Repeat("0", int(decimals)-len(digits)+1) + digits
	}
	split := len(digits) - int(decimals)
	whole, frac := digits[:split], digits[split:]
	frac = strings.TrimRight(frac, "0")

	out := whole
	if frac != "" {
		out = whole + "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ApplySlippage returns floor(value * (1 - tolerance)) in base units.
// Tolerance is a fraction in [0, 1), e.g. 0.005 for 0.5%. The tolerance's
// decimal rendering is authoritative: 0.005 means exactly 1/200, not the
// nearest binary float, which sits a hair above and would floor one base
// unit low.
func ApplySlippage(value *big.Int, tolerance float64) (*big.Int, error) {
	if tolerance < 0 || tolerance >= 1 {
		return nil, fmt.Errorf("slippage tolerance must be in [0, 1), got %v", tolerance)
	}
	tol, ok := new(big.Rat).SetString(strconv.FormatFloat(tolerance, 'f', -1, 64))
	if !ok {
		return nil, fmt.Errorf("invalid slippage tolerance: %v", tolerance)
	}
	factor := new(big.Rat).Sub(big.NewRat(1, 1), tol)
	scaled := new(big.Rat).Mul(new(big.Rat).SetInt(value), factor)
	// Quo truncates toward zero; value and factor are non-negative, so
	// this is the floor.
	return new(big.Int).Quo(scaled.Num(), scaled.Denom()), nil
}

// Ratio returns out/in as a float for display, respecting each side's
// decimal precision. Returns 0 when in is zero.
func Ratio(out *big.Int, outDecimals uint8, in *big.Int, inDecimals uint8) float64 {
	if in == nil || in.Sign() == 0 || out == nil {
		return 0
	}
	outF := new(big.Float).SetInt(out)
	outF.Quo(outF, pow10(outDecimals))
	inF := new(big.Float).SetInt(in)
	inF.Quo(inF, pow10(inDecimals))
	r, _ := new(big.Float).Quo(outF, inF).Float64()
	return r
}

func pow10(decimals uint8) *big.Float {
	return new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
}
