package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/services"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func newTestCalculator(t *testing.T, opts ...services.TransactionCalculatorOption) *services.TransactionCalculator {
	t.Helper()
	opts = append([]services.TransactionCalculatorOption{services.WithCalculatorClock(fixedClock)}, opts...)
	return services.NewTransactionCalculator(services.NewDefaultRateTable(), newTestResolver(t), opts...)
}

func TestTransactionCalculator_Jurisdictions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		jurisdiction string
		price        string
		gst, hst     string
		pst, qst     string
		totalTax     string
		totalAmount  string
	}{
		{name: "BC charges GST and PST", jurisdiction: "BC", price: "1000.00",
			gst: "50", hst: "0", pst: "70", qst: "0", totalTax: "120", totalAmount: "1120"},
		{name: "ON charges HST only", jurisdiction: "ON", price: "100.00",
			gst: "0", hst: "13", pst: "0", qst: "0", totalTax: "13", totalAmount: "113"},
		{name: "QC compounds QST on GST", jurisdiction: "qc", price: "100.00",
			gst: "5", hst: "0", pst: "0", qst: "10.47375", totalTax: "15.47375", totalAmount: "115.47375"},
		{name: "AB charges GST only", jurisdiction: "AB", price: "19.99",
			gst: "0.9995", hst: "0", pst: "0", qst: "0", totalTax: "0.9995", totalAmount: "20.9895"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Calculate(ctx, params.CalculateTaxParams{
				EntityID:     "merchant-1",
				Jurisdiction: tt.jurisdiction,
				LineItems:    []business.LineItem{item("sku-1", tt.price, 1)},
			})
			require.NoError(t, err)

			assertDecimal(t, tt.gst, result.Taxes.GST, "gst")
			assertDecimal(t, tt.hst, result.Taxes.HST, "hst")
			assertDecimal(t, tt.pst, result.Taxes.PST, "pst")
			assertDecimal(t, tt.qst, result.Taxes.QST, "qst")
			assertDecimal(t, tt.totalTax, result.TotalTax, "total tax")
			assertDecimal(t, tt.totalAmount, result.TotalAmount, "total amount")
			assertDecimal(t, tt.price, result.TaxableAmount, "taxable")
			assertDecimal(t, "0", result.ExemptAmount, "exempt")
			assert.Equal(t, business.ExemptionTypeNone, result.Exemption.Type)
			require.NoError(t, result.Validate())
		})
	}
}

func TestTransactionCalculator_Exemptions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()
	items := []business.LineItem{
		indigenousItem("carving", "200.00", 1),
		item("blanket", "50.00", 2),
	}

	t.Run("on reserve delivery exempts everything", func(t *testing.T) {
		result, err := calc.Calculate(ctx, params.CalculateTaxParams{
			EntityID:     "merchant-1",
			Jurisdiction: "BC",
			LineItems:    items,
			Claim:        business.ExemptionClaim{StatusCardNumber: activeCard, OnReserveDelivery: true},
		})
		require.NoError(t, err)

		assertDecimal(t, "300", result.Subtotal)
		assertDecimal(t, "300", result.ExemptAmount)
		assertDecimal(t, "0", result.TaxableAmount)
		assertDecimal(t, "0", result.TotalTax)
		assertDecimal(t, "300", result.TotalAmount)
		for _, li := range result.LineItems {
			assert.True(t, li.IsExempt, li.ItemID)
			assert.True(t, li.Taxes.IsZero(), li.ItemID)
		}
	})

	t.Run("off reserve relief reaches indigenous products only", func(t *testing.T) {
		result, err := calc.Calculate(ctx, params.CalculateTaxParams{
			EntityID:     "merchant-1",
			Jurisdiction: "BC",
			LineItems:    items,
			Claim:        business.ExemptionClaim{StatusCardNumber: activeCard},
		})
		require.NoError(t, err)

		require.Len(t, result.LineItems, 2)
		assert.True(t, result.LineItems[0].IsExempt)
		assert.False(t, result.LineItems[1].IsExempt)
		assertDecimal(t, "200", result.ExemptAmount)
		assertDecimal(t, "100", result.TaxableAmount)
		assertDecimal(t, "5", result.Taxes.GST)
		assertDecimal(t, "7", result.Taxes.PST)
		assertDecimal(t, "312", result.TotalAmount)
		assert.True(t, result.HasIndigenousExemption())
	})

	t.Run("band purchase", func(t *testing.T) {
		result, err := calc.Calculate(ctx, params.CalculateTaxParams{
			EntityID:     "merchant-1",
			Jurisdiction: "MB",
			LineItems:    items,
			Claim:        business.ExemptionClaim{BandNumber: "601"},
		})
		require.NoError(t, err)
		assert.Equal(t, business.ExemptionTypeBandPurchase, result.Exemption.Type)
		assertDecimal(t, "0", result.TotalTax)
	})

	t.Run("fully exempt recalculation is identical", func(t *testing.T) {
		fixedID := uuid.MustParse("7b1d7c62-0f69-4f1e-9c52-3a4b8f1e2d10")
		calc := newTestCalculator(t, services.WithCalculationIDs(func() uuid.UUID { return fixedID }))
		p := params.CalculateTaxParams{
			EntityID:     "merchant-1",
			BuyerID:      "buyer-7",
			Jurisdiction: "BC",
			LineItems:    items,
			Claim:        business.ExemptionClaim{StatusCardNumber: activeCard, OnReserveDelivery: true},
		}
		first, err := calc.Calculate(ctx, p)
		require.NoError(t, err)
		second, err := calc.Calculate(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestTransactionCalculator_ParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	items := make([]business.LineItem, 0, 257)
	for i := 0; i < 257; i++ {
		li := item(fmt.Sprintf("sku-%03d", i), fmt.Sprintf("%d.%02d", i%97, i%100), uint32(i%5+1))
		li.IsIndigenousProduct = i%3 == 0
		items = append(items, li)
	}
	fixedID := uuid.MustParse("0f5c2a7e-8d44-4d1b-a0a7-5c0f3f0b6a91")
	p := params.CalculateTaxParams{
		EntityID:     "merchant-1",
		Jurisdiction: "QC",
		LineItems:    items,
		Claim:        business.ExemptionClaim{StatusCardNumber: activeCard},
	}

	// one resolver over one record store, so both runs see the same exemption IDs
	rates := services.NewDefaultRateTable()
	resolver := newTestResolver(t)
	calculator := func(threshold int) *services.TransactionCalculator {
		return services.NewTransactionCalculator(rates, resolver,
			services.WithCalculatorClock(fixedClock),
			services.WithParallelThreshold(threshold),
			services.WithCalculationIDs(func() uuid.UUID { return fixedID }))
	}

	sequential, err := calculator(0).Calculate(ctx, p)
	require.NoError(t, err)
	parallel, err := calculator(16).Calculate(ctx, p)
	require.NoError(t, err)

	require.NotNil(t, sequential.Exemption.ExemptionID)

	assert.Equal(t, sequential, parallel)
	for i, li := range parallel.LineItems {
		assert.Equal(t, items[i].ItemID, li.ItemID)
	}
}

func TestTransactionCalculator_Conservation(t *testing.T) {
	calc := newTestCalculator(t)
	for _, j := range []string{"AB", "BC", "MB", "NB", "NS", "ON", "QC", "SK", "YT"} {
		t.Run(j, func(t *testing.T) {
			result, err := calc.Calculate(context.Background(), params.CalculateTaxParams{
				EntityID:     "merchant-1",
				Jurisdiction: j,
				LineItems: []business.LineItem{
					item("a", "12.34", 3),
					indigenousItem("b", "0.01", 7),
					item("c", "0", 1),
				},
				Claim: business.ExemptionClaim{StatusCardNumber: activeCard},
			})
			require.NoError(t, err)
			assert.True(t, result.Subtotal.Equal(result.TaxableAmount.Add(result.ExemptAmount)))
			assert.True(t, result.TotalAmount.Equal(result.Subtotal.Add(result.TotalTax)))
			assert.True(t, result.TotalTax.Equal(result.Taxes.Total()))
			for _, li := range result.LineItems {
				assert.NoError(t, li.Validate())
			}
		})
	}
}

func TestTransactionCalculator_Validation(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	t.Run("field errors", func(t *testing.T) {
		bad := item("sku-1", "-1.00", 0)
		_, err := calc.Calculate(ctx, params.CalculateTaxParams{
			EntityID:     "merchant-1",
			Jurisdiction: "BC",
			LineItems:    []business.LineItem{bad, item("sku-1", "1.00", 1)},
		})
		require.Error(t, err)
		assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
		var fields []string
		for _, f := range taxerr.FieldsOf(err) {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, []string{"line_items[0].quantity", "line_items[0].unit_price", "line_items[1].item_id"}, fields)
	})

	t.Run("no line items", func(t *testing.T) {
		_, err := calc.Calculate(ctx, params.CalculateTaxParams{EntityID: "merchant-1", Jurisdiction: "BC"})
		assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
	})

	t.Run("unknown jurisdiction", func(t *testing.T) {
		_, err := calc.Calculate(ctx, params.CalculateTaxParams{
			EntityID:     "merchant-1",
			Jurisdiction: "ZZ",
			LineItems:    []business.LineItem{item("sku-1", "1.00", 1)},
		})
		assert.Equal(t, taxerr.CodeUnknownJurisdiction, taxerr.CodeOf(err))
	})
}

func TestTransactionCalculator_TaxPoint(t *testing.T) {
	calc := newTestCalculator(t)
	taxPoint := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)

	result, err := calc.Calculate(context.Background(), params.CalculateTaxParams{
		EntityID:     "merchant-1",
		Jurisdiction: "ON",
		LineItems:    []business.LineItem{item("sku-1", "10.00", 1)},
		TaxPointAt:   &taxPoint,
	})
	require.NoError(t, err)
	assert.Equal(t, taxPoint, result.TaxPointAt)
	assert.Equal(t, testNow, result.CreatedAt)
}
