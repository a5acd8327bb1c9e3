// Package numeric implements the two canonical rounding rules the wire
// protocol requires: size truncation to an asset's szDecimals, and
// price rounding to 5 significant figures followed by a scale-dependent
// number of decimal places. All arithmetic runs on arbitrary-precision
// decimals (shopspring/decimal) rather than binary floats, so that
// values like "0.1" round the same way every time.
package numeric

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/hyperliquid-client/gohl/errs"
	"github.com/shopspring/decimal"
)

// ParseDecimal parses a wire-facing decimal string, classifying any
// failure as BAD_NUMBER.
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, errs.Wrap(errs.BadNumber, fmt.Sprintf("invalid decimal %q", s), err)
	}
	return d, nil
}

// FormatSize truncates toward zero to szDecimals places and returns the
// canonical plain-decimal string. Negative inputs are treated as their
// absolute value: sizes are never negative on the wire.
func FormatSize(raw decimal.Decimal, szDecimals int) string {
	if szDecimals < 0 {
		szDecimals = 0
	}
	truncated := raw.Abs().Truncate(int32(szDecimals))
	return stripTrailingZeros(truncated.StringFixed(int32(szDecimals)), 0)
}

// FormatPrice rounds half-up to 5 significant figures, then rounds
// half-up to N = (8 if isSpot else 6) - szDecimals places, clamped to
// N >= 0. The result keeps at least one fractional digit when N > 0, so
// a price that rounds to a whole number still carries one trailing
// decimal (e.g. "3150.0"), and strips everything beyond that.
func FormatPrice(raw decimal.Decimal, szDecimals int, isSpot bool) (string, error) {
	if raw.IsZero() {
		return "0", nil
	}

	neg := raw.IsNegative()
	abs := raw.Abs()

	sig := roundSigFigs(abs, 5)

	baseDecimals := 6
	if isSpot {
		baseDecimals = 8
	}
	n := baseDecimals - szDecimals
	if n < 0 {
		n = 0
	}

	rounded := sig.Round(int32(n))
	s := rounded.StringFixed(int32(n))

	minDecimals := n
	if minDecimals > 1 {
		minDecimals = 1
	}
	s = stripTrailingZeros(s, minDecimals)

	if neg {
		s = "-" + s
	}
	return s, nil
}

// roundSigFigs rounds x (assumed non-negative) to n significant digits,
// half-up, using only exact decimal shifts so no float64 ever enters
// the computation.
func roundSigFigs(x decimal.Decimal, n int) decimal.Decimal {
	if x.IsZero() {
		return x
	}
	d := magnitudeDigits(x)
	power := int32(n - d)
	scaled := x.Shift(power).Round(0)
	return scaled.Shift(-power)
}

// magnitudeDigits returns ceil(log10(x)) for x > 0, computed exactly
// from the decimal's coefficient and exponent instead of math.Log10.
func magnitudeDigits(x decimal.Decimal) int {
	coeff := new(big.Int).Abs(x.Coefficient())
	digits := coeff.String()
	k := len(digits)

	isPowerOfTen := digits[0] == '1'
	for _, c := range digits[1:] {
		if c != '0' {
			isPowerOfTen = false
			break
		}
	}

	d := k + int(x.Exponent())
	if isPowerOfTen {
		d--
	}
	return d
}

// stripTrailingZeros removes trailing zero digits from s's fractional
// part down to a floor of minDecimals digits, dropping the decimal
// point entirely once nothing remains after it.
func stripTrailingZeros(s string, minDecimals int) string {
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return s
	}
	for len(s)-dot-1 > minDecimals && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s)-dot-1 == 0 {
		s = s[:dot]
	}
	return s
}

// ToUsdInt scales x by 10^6 and truncates toward zero, matching the
// server's USD-integer encoding used by updateIsolatedMargin,
// vaultTransfer and subAccountTransfer.
func ToUsdInt(x decimal.Decimal) *big.Int {
	return x.Shift(6).Truncate(0).BigInt()
}

// ToIntForHashing scales x by 10^9 and truncates toward zero, matching
// the precision used when folding numeric fields into a signing digest.
func ToIntForHashing(x decimal.Decimal) *big.Int {
	return x.Shift(9).Truncate(0).BigInt()
}
