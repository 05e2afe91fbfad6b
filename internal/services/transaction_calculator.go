package services

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the line item count from which items are taxed concurrently.
const DefaultParallelThreshold = 64

// TransactionCalculator produces the TaxCalculation of a whole transaction.
type TransactionCalculator struct {
	rates             interfaces.RateProvider
	resolver          interfaces.ExemptionResolver
	taxer             LineItemTaxer
	parallelThreshold int
	workers           int
	now               func() time.Time
	newID             func() uuid.UUID
	logger            *zap.Logger
}

// TransactionCalculatorOption configures a TransactionCalculator
type TransactionCalculatorOption func(*TransactionCalculator)

// WithParallelThreshold sets the item count from which taxing runs concurrently.
// Zero or less disables concurrent taxing.
func WithParallelThreshold(n int) TransactionCalculatorOption {
	return func(c *TransactionCalculator) { c.parallelThreshold = n }
}

// WithCalculatorClock overrides the createdAt source.
func WithCalculatorClock(now func() time.Time) TransactionCalculatorOption {
	return func(c *TransactionCalculator) { c.now = now }
}

// WithCalculationIDs overrides calculation ID generation.
func WithCalculationIDs(newID func() uuid.UUID) TransactionCalculatorOption {
	return func(c *TransactionCalculator) { c.newID = newID }
}

// NewTransactionCalculator creates a calculator over a rate provider and exemption resolver
func NewTransactionCalculator(rates interfaces.RateProvider, resolver interfaces.ExemptionResolver, opts ...TransactionCalculatorOption) *TransactionCalculator {
	c := &TransactionCalculator{
		rates:             rates,
		resolver:          resolver,
		parallelThreshold: DefaultParallelThreshold,
		workers:           runtime.GOMAXPROCS(0),
		now:               time.Now,
		newID:             uuid.New,
		logger:            logger.ForComponent(logger.ComponentCalculator),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate resolves the exemption once, taxes every line item and returns
// the invariant-checked calculation. The result is never modified afterwards.
func (c *TransactionCalculator) Calculate(ctx context.Context, p params.CalculateTaxParams) (business.TaxCalculation, error) {
	if err := validateCalculationParams(p); err != nil {
		return business.TaxCalculation{}, err
	}

	jurisdiction := normalizeJurisdiction(p.Jurisdiction)
	rates, ok := c.rates.GetRates(jurisdiction)
	if !ok {
		return business.TaxCalculation{}, taxerr.UnknownJurisdiction(jurisdiction)
	}

	claim := p.Claim
	claim.Jurisdiction = jurisdiction
	if claim.BuyerID == "" {
		claim.BuyerID = p.BuyerID
	}
	decision, err := c.resolver.Resolve(ctx, claim)
	if err != nil {
		return business.TaxCalculation{}, err
	}

	results, err := c.taxItems(ctx, p.LineItems, rates, decision)
	if err != nil {
		return business.TaxCalculation{}, err
	}

	calc := business.TaxCalculation{
		CalculationID: c.newID(),
		EntityID:      p.EntityID,
		BuyerID:       claim.BuyerID,
		Jurisdiction:  jurisdiction,
		Subtotal:      decimal.Zero,
		ExemptAmount:  decimal.Zero,
		Taxes:         business.TaxAmounts{GST: decimal.Zero, HST: decimal.Zero, PST: decimal.Zero, QST: decimal.Zero},
		Exemption:     decision,
		LineItems:     results,
		SupersedesID:  p.SupersedesID,
		CreatedAt:     c.now().UTC(),
	}
	calc.TaxPointAt = calc.CreatedAt
	if p.TaxPointAt != nil {
		calc.TaxPointAt = p.TaxPointAt.UTC()
	}
	// Summed in item order so the result is reproducible byte for byte.
	for _, r := range results {
		calc.Subtotal = calc.Subtotal.Add(r.Amount)
		calc.Taxes = calc.Taxes.Add(r.Taxes)
		if r.IsExempt {
			calc.ExemptAmount = calc.ExemptAmount.Add(r.Amount)
		}
	}
	calc.TaxableAmount = calc.Subtotal.Sub(calc.ExemptAmount)
	calc.TotalTax = calc.Taxes.Total()
	calc.TotalAmount = calc.Subtotal.Add(calc.TotalTax)

	if err := calc.Validate(); err != nil {
		c.logger.Error("Tax calculation failed invariant check",
			zap.String("calculation_id", calc.CalculationID.String()),
			zap.String("jurisdiction", jurisdiction),
			zap.Error(err))
		return business.TaxCalculation{}, err
	}

	c.logger.Info("Calculated transaction tax",
		zap.String("calculation_id", calc.CalculationID.String()),
		zap.String("entity_id", calc.EntityID),
		zap.String("jurisdiction", jurisdiction),
		zap.Int("line_items", len(results)),
		zap.String("exemption_type", string(decision.Type)),
		zap.String("total_tax", calc.TotalTax.String()))

	return calc, nil
}

func (c *TransactionCalculator) taxItems(ctx context.Context, items []business.LineItem, rates business.JurisdictionRates, decision business.ExemptionDecision) ([]business.LineItemTaxResult, error) {
	results := make([]business.LineItemTaxResult, len(items))

	if c.parallelThreshold <= 0 || len(items) < c.parallelThreshold {
		for i, item := range items {
			results[i] = c.taxer.Apply(item, item.Amount(), rates, decision)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.taxer.Apply(items[i], items[i].Amount(), rates, decision)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("line item taxing cancelled: %w", err)
	}
	return results, nil
}

func validateCalculationParams(p params.CalculateTaxParams) error {
	var fields []taxerr.FieldError
	if strings.TrimSpace(p.EntityID) == "" {
		fields = append(fields, taxerr.FieldError{Field: "entity_id", Message: "is required"})
	}
	if strings.TrimSpace(p.Jurisdiction) == "" {
		fields = append(fields, taxerr.FieldError{Field: "jurisdiction", Message: "is required"})
	}
	if len(p.LineItems) == 0 {
		fields = append(fields, taxerr.FieldError{Field: "line_items", Message: "at least one line item is required"})
	}

	seen := make(map[string]struct{}, len(p.LineItems))
	for i, item := range p.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		if item.ItemID == "" {
			fields = append(fields, taxerr.FieldError{Field: prefix + ".item_id", Message: "is required"})
		} else if _, dup := seen[item.ItemID]; dup {
			fields = append(fields, taxerr.FieldError{Field: prefix + ".item_id", Message: "duplicates an earlier item"})
		}
		seen[item.ItemID] = struct{}{}
		if item.Quantity == 0 {
			fields = append(fields, taxerr.FieldError{Field: prefix + ".quantity", Message: "must be at least 1"})
		}
		if item.UnitPrice.IsNegative() {
			fields = append(fields, taxerr.FieldError{Field: prefix + ".unit_price", Message: "must not be negative"})
		}
	}

	if len(fields) > 0 {
		return taxerr.InvalidRequest(fields...)
	}
	return nil
}
