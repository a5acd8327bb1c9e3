package numeric

import (
	"testing"

	"github.com/hyperliquid-client/gohl/errs"
	"github.com/shopspring/decimal"
)

func mustParse(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := ParseDecimal(s)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return d
}

func TestParseDecimal_BadNumber(t *testing.T) {
	_, err := ParseDecimal("not-a-number")
	if !errs.Is(err, errs.BadNumber) {
		t.Fatalf("expected BAD_NUMBER, got %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		szDecimals int
		want       string
	}{
		{"exact", "0.01", 4, "0.01"},
		{"truncates_extra_precision", "0.013371", 4, "0.0133"},
		{"negative_becomes_absolute", "-2.5", 2, "2.5"},
		{"zero", "0", 4, "0"},
		{"integer", "10", 3, "10"},
		{"trailing_zero_stripped", "1.2000", 4, "1.2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FormatSize(mustParse(t, c.raw), c.szDecimals)
			if got != c.want {
				t.Fatalf("FormatSize(%s, %d) = %q, want %q", c.raw, c.szDecimals, got, c.want)
			}
		})
	}
}

func TestFormatSize_Idempotent(t *testing.T) {
	d := mustParse(t, "123.456789")
	once := FormatSize(d, 4)
	twice := FormatSize(mustParse(t, once), 4)
	if once != twice {
		t.Fatalf("FormatSize not idempotent: %q then %q", once, twice)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		szDecimals int
		isSpot     bool
		want       string
	}{
		// mid 3000 * 1.05 slippage, perp ETH (szDecimals 4) -> N = 6-4 = 2
		{"market_open_slippage", "3150", 4, false, "3150.0"},
		// 5 sig figs of 12345.678912 rounds up to 12346, perp BTC szDecimals 5 -> N = 1
		{"five_sigfig_then_one_dp", "12345.678912", 5, false, "12346.0"},
		// mid 2986.3 * 1.05 = 3135.615, perp ETH szDecimals 4 -> N = 2
		{"rounds_and_strips_one_zero", "3135.615", 4, false, "3135.6"},
		{"zero", "0", 4, false, "0"},
		{"spot_uses_eight_base_decimals", "1.23456789", 2, true, "1.2346"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FormatPrice(mustParse(t, c.raw), c.szDecimals, c.isSpot)
			if err != nil {
				t.Fatalf("FormatPrice: %v", err)
			}
			if got != c.want {
				t.Fatalf("FormatPrice(%s, %d, %v) = %q, want %q", c.raw, c.szDecimals, c.isSpot, got, c.want)
			}
		})
	}
}

func TestFormatPrice_Idempotent(t *testing.T) {
	d := mustParse(t, "45123.917")
	once, err := FormatPrice(d, 2, false)
	if err != nil {
		t.Fatalf("FormatPrice: %v", err)
	}
	again, err := FormatPrice(mustParse(t, once), 2, false)
	if err != nil {
		t.Fatalf("FormatPrice second pass: %v", err)
	}
	if once != again {
		t.Fatalf("FormatPrice not idempotent: %q then %q", once, again)
	}
}

func TestToUsdInt(t *testing.T) {
	got := ToUsdInt(mustParse(t, "12.3456789"))
	want := "12345678"
	if got.String() != want {
		t.Fatalf("ToUsdInt = %s, want %s", got.String(), want)
	}
}

func TestToIntForHashing(t *testing.T) {
	got := ToIntForHashing(mustParse(t, "1.000000001"))
	want := "1000000001"
	if got.String() != want {
		t.Fatalf("ToIntForHashing = %s, want %s", got.String(), want)
	}
}
