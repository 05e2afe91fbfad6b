package business_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validCalculation() business.TaxCalculation {
	return business.TaxCalculation{
		CalculationID: uuid.New(),
		Subtotal:      d("1500"),
		TaxableAmount: d("1000"),
		ExemptAmount:  d("500"),
		Taxes:         business.TaxAmounts{GST: d("50"), PST: d("70")},
		TotalTax:      d("120"),
		TotalAmount:   d("1620"),
		LineItems: []business.LineItemTaxResult{
			{ItemID: "a", Amount: d("1000"), Taxes: business.TaxAmounts{GST: d("50"), PST: d("70")}, TotalTax: d("120")},
			{ItemID: "b", Amount: d("500"), IsExempt: true, TotalTax: decimal.Zero},
		},
	}
}

func TestTaxCalculationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *business.TaxCalculation)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *business.TaxCalculation) {}},
		{name: "subtotal split broken", mutate: func(c *business.TaxCalculation) { c.ExemptAmount = d("499.99") }, wantErr: true},
		{name: "total amount broken", mutate: func(c *business.TaxCalculation) { c.TotalAmount = d("1620.01") }, wantErr: true},
		{name: "per type sum broken", mutate: func(c *business.TaxCalculation) { c.Taxes.PST = d("69") }, wantErr: true},
		{name: "line tax sum broken", mutate: func(c *business.TaxCalculation) {
			c.LineItems[0].Taxes.GST = d("49")
			c.LineItems[0].TotalTax = d("119")
		}, wantErr: true},
		{name: "exempt line carrying tax", mutate: func(c *business.TaxCalculation) {
			c.LineItems[1].Taxes.GST = d("1")
			c.LineItems[1].TotalTax = d("1")
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCalculation()
			tt.mutate(&c)
			err := c.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, taxerr.ErrInvariantViolation))
		})
	}
}

func TestLineItemAmount(t *testing.T) {
	item := business.LineItem{ItemID: "x", Quantity: 3, UnitPrice: d("19.99")}
	assert.True(t, item.Amount().Equal(d("59.97")))
}

func TestRemittanceValidate(t *testing.T) {
	valid := func() business.Remittance {
		return business.Remittance{
			RemittanceID: uuid.New(),
			Amounts:      business.TaxAmounts{GST: d("0.03"), PST: d("0.05")},
			TotalAmount:  d("0.08"),
			Status:       business.RemittanceStatusPending,
		}
	}
	tests := []struct {
		name    string
		mutate  func(r *business.Remittance)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *business.Remittance) {}},
		{name: "per-type sum differs from total", mutate: func(r *business.Remittance) { r.Amounts.GST = d("0.04") }, wantErr: true},
		{name: "sub-cent amount", mutate: func(r *business.Remittance) {
			r.Amounts = business.TaxAmounts{GST: d("0.035"), PST: d("0.045")}
		}, wantErr: true},
		{name: "nothing owed", mutate: func(r *business.Remittance) {
			r.Amounts = business.TaxAmounts{}
			r.TotalAmount = decimal.Zero
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, taxerr.ErrInvariantViolation), "got %v", err)
		})
	}
}
