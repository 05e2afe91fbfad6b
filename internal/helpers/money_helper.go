package helpers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/constants"
	"github.com/unations/tax-engine/internal/types/business"
)

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds an exact amount half away from zero to whole cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(constants.MoneyScale)
}

// FormatMoney renders an amount as a fixed-scale string, e.g. "1120.00".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(constants.MoneyScale)
}

// FormatRate renders a rate or percentage without trailing zeros.
func FormatRate(d decimal.Decimal) string {
	return d.String()
}

// ParseMoney parses a decimal string received at the API boundary. Amounts
// may not carry more precision than cents.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < -constants.MoneyScale && !d.Equal(d.Round(constants.MoneyScale)) {
		return decimal.Zero, fmt.Errorf("amount %q has more than %d decimal places", s, constants.MoneyScale)
	}
	return d, nil
}

// ParseRate parses a non-negative rate fraction such as "0.09975".
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("rate %q must be between 0 and 1", s)
	}
	return d, nil
}

// ParsePercentage parses a percentage in 0..100.
func ParsePercentage(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("percentage %q must be between 0 and 100", s)
	}
	return d, nil
}

// MustDecimal parses a compile-time constant and panics on malformed input.
func MustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// RoundTaxAmounts rounds per-type amounts to whole cents such that they sum
// to the rounded total of a.
func RoundTaxAmounts(a business.TaxAmounts) business.TaxAmounts {
	return AllocateCents(a, RoundMoney(a.Total()))
}

// AllocateCents rounds every amount in a down to whole cents, then hands the
// cents still needed to reach total to the types with the largest dropped
// remainder (canonical order on ties). When total is below the floored sum,
// cents come back off the positive amounts with the smallest remainder.
func AllocateCents(a business.TaxAmounts, total decimal.Decimal) business.TaxAmounts {
	type share struct {
		taxType   business.TaxType
		remainder decimal.Decimal
	}
	cent := decimal.New(1, -constants.MoneyScale)

	var out business.TaxAmounts
	shares := make([]share, 0, len(business.AllTaxTypes))
	for _, t := range business.AllTaxTypes {
		v := a.Get(t)
		floor := v.RoundFloor(constants.MoneyScale)
		out = out.With(t, floor)
		shares = append(shares, share{taxType: t, remainder: v.Sub(floor)})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder.GreaterThan(shares[j].remainder)
	})

	missing := RoundMoney(total).Sub(out.Total()).Div(cent).IntPart()
	for i := 0; missing > 0; i++ {
		t := shares[i%len(shares)].taxType
		out = out.With(t, out.Get(t).Add(cent))
		missing--
	}
	for missing < 0 {
		taken := false
		for i := len(shares) - 1; i >= 0 && missing < 0; i-- {
			t := shares[i].taxType
			if !out.Get(t).IsPositive() {
				continue
			}
			out = out.With(t, out.Get(t).Sub(cent))
			missing++
			taken = true
		}
		if !taken {
			break
		}
	}
	return out
}
