// Package units converts between raw on-chain integers and display values.
//
// Raw amounts are integers scaled by 10^decimals. Conversion goes through
// shopspring/decimal so values above 2^53 are never squeezed through a
// float64. Formatted strings are for display only and must not be parsed
// back into transaction amounts.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// SecondsPerYear is a 365-day year. Leap years are not modelled.
const SecondsPerYear = 31_536_000

// RateDecimals is the fixed-point scale of the vault's reward rate.
const RateDecimals = 18

// ErrInvalidAmount is returned when a user-entered amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

var amountPattern = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)$`)

// ToDecimal scales raw down by 10^decimals. A nil raw value is zero.
func ToDecimal(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// FormatUnits renders raw as an en-US grouped decimal string with between
// minFrac and maxFrac fraction digits. A nil raw value renders as zero.
func FormatUnits(raw *big.Int, decimals int32, minFrac, maxFrac int32) string {
	return FormatDecimal(ToDecimal(raw, decimals), minFrac, maxFrac)
}

// FormatBalance is the wallet balance format: exactly two fraction digits.
func FormatBalance(raw *big.Int, decimals int32) string {
	return FormatUnits(raw, decimals, 2, 2)
}

// FormatAmount is the staking format: two to four fraction digits.
func FormatAmount(raw *big.Int, decimals int32) string {
	return FormatUnits(raw, decimals, 2, 4)
}

// FormatDecimal rounds d half away from zero to maxFrac digits, trims trailing
// zeros down to minFrac and groups the integer part in thousands.
func FormatDecimal(d decimal.Decimal, minFrac, maxFrac int32) string {
	if minFrac < 0 {
		minFrac = 0
	}
	if maxFrac < minFrac {
		maxFrac = minFrac
	}

	s := d.StringFixed(maxFrac)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	for len(frac) > int(minFrac) && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		n = new(big.Int)
	}
	out := humanize.BigComma(n)
	if frac != "" {
		out += "." + frac
	}
	if neg && strings.ContainsAny(out, "123456789") {
		out = "-" + out
	}
	return out
}

// FormatUSD renders d as en-US currency, e.g. "$1,234.50".
func FormatUSD(d decimal.Decimal) string {
	s := FormatDecimal(d.Abs(), 2, 2)
	if d.IsNegative() && s != "0.00" {
		return "-$" + s
	}
	return "$" + s
}

// ParseUnits converts a user-entered decimal string into a raw integer scaled
// by 10^decimals. Extra fraction digits beyond decimals are rounded half up.
// Signs, exponents and grouping separators are rejected.
func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if strings.HasPrefix(amount, ".") {
		amount = "0" + amount
	}
	amount = strings.TrimSuffix(amount, ".")

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, amount, err)
	}
	return d.Shift(decimals).Round(0).BigInt(), nil
}

// APY annualises a per-second reward rate expressed with 18 decimals:
//
//	apy = rate * SecondsPerYear / 1e18 * 100
//
// Compounding is ignored. A nil rate yields zero.
func APY(ratePerSecond *big.Int) decimal.Decimal {
	if ratePerSecond == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(ratePerSecond, 0).
		Mul(decimal.NewFromInt(SecondsPerYear)).
		Shift(-RateDecimals).
		Mul(decimal.NewFromInt(100))
}
