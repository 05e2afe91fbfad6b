package responses_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"github.com/unations/tax-engine/internal/types/business"
)

func presentedSum(t *testing.T, r responses.TaxAmountsResponse) decimal.Decimal {
	t.Helper()
	sum := decimal.Zero
	for _, s := range []string{r.GST, r.HST, r.PST, r.QST} {
		sum = sum.Add(decimal.RequireFromString(s))
	}
	return sum
}

func TestNewTaxCalculationResponse_SubCentTotalsAddUp(t *testing.T) {
	d := decimal.RequireFromString
	// BC, one item at 0.10: gst 0.005, pst 0.007
	taxes := business.TaxAmounts{GST: d("0.005"), PST: d("0.007")}
	calc := business.TaxCalculation{
		CalculationID: uuid.New(),
		Jurisdiction:  "BC",
		Subtotal:      d("0.10"),
		TaxableAmount: d("0.10"),
		ExemptAmount:  decimal.Zero,
		Taxes:         taxes,
		TotalTax:      d("0.012"),
		TotalAmount:   d("0.112"),
		LineItems: []business.LineItemTaxResult{
			{ItemID: "a", Amount: d("0.10"), Taxes: taxes, TotalTax: d("0.012")},
		},
	}

	resp := responses.NewTaxCalculationResponse(calc)

	assert.Equal(t, "0.00", resp.Taxes.GST)
	assert.Equal(t, "0.01", resp.Taxes.PST)
	assert.Equal(t, "0.01", resp.TotalTax)
	assert.Equal(t, "0.11", resp.TotalAmount)
	assert.Equal(t, resp.TotalTax, helpers.FormatMoney(presentedSum(t, resp.Taxes)))

	line := resp.LineItems[0]
	assert.Equal(t, line.TotalTax, helpers.FormatMoney(presentedSum(t, line.Taxes)))
}

func TestNewTaxCalculationResponse_QuebecCompounding(t *testing.T) {
	d := decimal.RequireFromString
	taxes := business.TaxAmounts{GST: d("5.00"), QST: d("10.47375")}
	calc := business.TaxCalculation{
		Jurisdiction:  "QC",
		Subtotal:      d("100.00"),
		TaxableAmount: d("100.00"),
		Taxes:         taxes,
		TotalTax:      d("15.47375"),
		TotalAmount:   d("115.47375"),
	}

	resp := responses.NewTaxCalculationResponse(calc)

	assert.Equal(t, "5.00", resp.Taxes.GST)
	assert.Equal(t, "10.47", resp.Taxes.QST)
	assert.Equal(t, "15.47", resp.TotalTax)
	assert.Equal(t, "115.47", resp.TotalAmount)
}

func TestNewRemittanceResponse_AmountsMatchTotal(t *testing.T) {
	d := decimal.RequireFromString
	resp := responses.NewRemittanceResponse(business.Remittance{
		Amounts:     business.TaxAmounts{GST: d("0.03"), PST: d("0.05")},
		TotalAmount: d("0.08"),
		Status:      business.RemittanceStatusPending,
	})
	assert.Equal(t, "0.03", resp.Amounts.GST)
	assert.Equal(t, "0.05", resp.Amounts.PST)
	assert.Equal(t, resp.TotalAmount, helpers.FormatMoney(presentedSum(t, resp.Amounts)))
}
