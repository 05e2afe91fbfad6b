package helpers_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/business"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1120", "1120.00"},
		{"10.47375", "10.47"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"5", "5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "1000.00", want: "1000"},
		{name: "whitespace", in: " 19.99 ", want: "19.99"},
		{name: "trailing zeros beyond cents", in: "10.000", want: "10"},
		{name: "sub-cent precision", in: "10.001", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := helpers.ParseMoney(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseRateAndPercentage(t *testing.T) {
	r, err := helpers.ParseRate("0.09975")
	require.NoError(t, err)
	assert.Equal(t, "0.09975", helpers.FormatRate(r))

	_, err = helpers.ParseRate("1.5")
	assert.Error(t, err)
	_, err = helpers.ParseRate("-0.01")
	assert.Error(t, err)

	p, err := helpers.ParsePercentage("100")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(100)))
	_, err = helpers.ParsePercentage("100.01")
	assert.Error(t, err)
}

func TestAllocateCents(t *testing.T) {
	dec := decimal.RequireFromString
	tests := []struct {
		name    string
		amounts business.TaxAmounts
		total   string
		want    business.TaxAmounts
	}{
		{
			name:    "largest remainder takes the cent",
			amounts: business.TaxAmounts{GST: dec("0.005"), PST: dec("0.007")},
			total:   "0.01",
			want:    business.TaxAmounts{GST: dec("0"), PST: dec("0.01")},
		},
		{
			name:    "remittance after credits",
			amounts: business.TaxAmounts{GST: dec("0.035"), PST: dec("0.049")},
			total:   "0.08",
			want:    business.TaxAmounts{GST: dec("0.03"), PST: dec("0.05")},
		},
		{
			name:    "ties go in canonical order",
			amounts: business.TaxAmounts{GST: dec("0.005"), QST: dec("0.005")},
			total:   "0.01",
			want:    business.TaxAmounts{GST: dec("0.01"), QST: dec("0")},
		},
		{
			name:    "whole cents unchanged",
			amounts: business.TaxAmounts{GST: dec("50.00"), PST: dec("70.00")},
			total:   "120.00",
			want:    business.TaxAmounts{GST: dec("50"), PST: dec("70")},
		},
		{
			name:    "total below floored sum",
			amounts: business.TaxAmounts{GST: dec("0.02"), PST: dec("0.019")},
			total:   "0.02",
			want:    business.TaxAmounts{GST: dec("0.01"), PST: dec("0.01")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := helpers.AllocateCents(tt.amounts, dec(tt.total))
			assert.True(t, tt.want.Equal(got), "got %+v", got)
			assert.True(t, dec(tt.total).Equal(got.Total()))
		})
	}
}

func TestRoundTaxAmountsPreservesTotal(t *testing.T) {
	a := business.TaxAmounts{GST: decimal.RequireFromString("0.005"), PST: decimal.RequireFromString("0.007")}
	got := helpers.RoundTaxAmounts(a)
	assert.Equal(t, "0.01", helpers.FormatMoney(got.Total()))
	assert.Equal(t, helpers.FormatMoney(helpers.RoundMoney(a.Total())), helpers.FormatMoney(got.Total()))
}
