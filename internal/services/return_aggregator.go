package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/constants"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
)

// ITCPolicy estimates recoverable input tax credits per tax type from the
// tax collected in a period. It is an approximation, not a ledger figure.
type ITCPolicy func(collected business.TaxAmounts) business.TaxAmounts

// FlatRatioITCPolicy assumes ratio of every collected tax is recoverable.
func FlatRatioITCPolicy(ratio decimal.Decimal) ITCPolicy {
	return func(collected business.TaxAmounts) business.TaxAmounts {
		return collected.Mul(ratio)
	}
}

// DefaultITCPolicy applies constants.DefaultITCRatio.
func DefaultITCPolicy() ITCPolicy {
	return FlatRatioITCPolicy(helpers.MustDecimal(constants.DefaultITCRatio))
}

var (
	highAuditRiskRate   = helpers.MustDecimal(constants.HighAuditRiskExemptionRate)
	mediumAuditRiskRate = helpers.MustDecimal(constants.MediumAuditRiskExemptionRate)
)

// ReturnAggregator folds the calculations of a filing period into a TaxReturn.
// It never fetches calculations itself.
type ReturnAggregator struct {
	itc ITCPolicy
	now func() time.Time
}

// NewReturnAggregator creates an aggregator using the given ITC policy, or the
// default flat ratio when itc is nil.
func NewReturnAggregator(itc ITCPolicy, now func() time.Time) *ReturnAggregator {
	if itc == nil {
		itc = DefaultITCPolicy()
	}
	if now == nil {
		now = time.Now
	}
	return &ReturnAggregator{itc: itc, now: now}
}

// AuditRisk grades a return by the share of calculations carrying an
// Indigenous exemption. It is monotonic in the rate.
func AuditRisk(indigenousCount, total int) business.RiskLevel {
	if total == 0 {
		return business.RiskLevelLow
	}
	rate := decimal.NewFromInt(int64(indigenousCount)).Div(decimal.NewFromInt(int64(total)))
	switch {
	case rate.GreaterThan(highAuditRiskRate):
		return business.RiskLevelHigh
	case rate.GreaterThan(mediumAuditRiskRate):
		return business.RiskLevelMedium
	default:
		return business.RiskLevelLow
	}
}

// Aggregate builds a Draft return. Every calculation must belong to the entity,
// have its tax point inside [StartDate, EndDate) and appear once. Calculations superseded by
// a correction in the same set are left out.
func (a *ReturnAggregator) Aggregate(p params.AggregateReturnParams, calculations []business.TaxCalculation) (business.TaxReturn, error) {
	if !helpers.IsValidReturnType(p.ReturnType) {
		return business.TaxReturn{}, taxerr.InvalidRequest(taxerr.FieldError{Field: "return_type", Message: "must be monthly, quarterly or annual"})
	}
	if !p.EndDate.After(p.StartDate) {
		return business.TaxReturn{}, taxerr.InvalidRequest(taxerr.FieldError{Field: "end_date", Message: "must be after start_date"})
	}

	seen := make(map[uuid.UUID]struct{}, len(calculations))
	for _, c := range calculations {
		if _, dup := seen[c.CalculationID]; dup {
			return business.TaxReturn{}, taxerr.PeriodOverlap("calculation %s supplied twice", c.CalculationID)
		}
		seen[c.CalculationID] = struct{}{}
		if c.EntityID != p.EntityID {
			return business.TaxReturn{}, taxerr.InvariantViolation("calculation %s belongs to entity %s, not %s", c.CalculationID, c.EntityID, p.EntityID)
		}
		if c.TaxPointAt.Before(p.StartDate) || !c.TaxPointAt.Before(p.EndDate) {
			return business.TaxReturn{}, taxerr.InvariantViolation("calculation %s at %s outside period [%s, %s)",
				c.CalculationID, c.TaxPointAt.Format(time.RFC3339), p.StartDate.Format(time.RFC3339), p.EndDate.Format(time.RFC3339))
		}
	}

	superseded := lo.FilterMap(calculations, func(c business.TaxCalculation, _ int) (uuid.UUID, bool) {
		if c.SupersedesID == nil {
			return uuid.Nil, false
		}
		return *c.SupersedesID, true
	})
	included := lo.Reject(calculations, func(c business.TaxCalculation, _ int) bool {
		return lo.Contains(superseded, c.CalculationID)
	})

	dueDate, err := helpers.DueDate(p.ReturnType, p.EndDate)
	if err != nil {
		return business.TaxReturn{}, err
	}

	now := a.now().UTC()
	ret := business.TaxReturn{
		ReturnID:        p.ReturnID,
		LineageID:       p.LineageID,
		Version:         p.Version,
		AmendsReturnID:  p.AmendsReturnID,
		EntityID:        p.EntityID,
		ReturnType:      p.ReturnType,
		Period:          p.Period,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		TotalSales:      decimal.Zero,
		TaxableSales:    decimal.Zero,
		ExemptSales:     decimal.Zero,
		IndigenousSales: decimal.Zero,
		CollectedTax:    business.TaxAmounts{GST: decimal.Zero, HST: decimal.Zero, PST: decimal.Zero, QST: decimal.Zero},
		CalculationIDs:  make([]uuid.UUID, 0, len(included)),
		Status:          business.ReturnStatusDraft,
		DueDate:         dueDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if ret.Version == 0 {
		ret.Version = 1
	}
	if ret.LineageID == uuid.Nil {
		ret.LineageID = ret.ReturnID
	}

	for _, c := range included {
		ret.TotalSales = ret.TotalSales.Add(c.Subtotal)
		ret.TaxableSales = ret.TaxableSales.Add(c.TaxableAmount)
		ret.ExemptSales = ret.ExemptSales.Add(c.ExemptAmount)
		ret.CollectedTax = ret.CollectedTax.Add(c.Taxes)
		if c.HasIndigenousExemption() {
			ret.IndigenousSales = ret.IndigenousSales.Add(c.Subtotal)
			ret.IndigenousCount++
		}
		ret.CalculationIDs = append(ret.CalculationIDs, c.CalculationID)
	}
	ret.CalculationCount = len(ret.CalculationIDs)
	ret.TotalTaxCollected = ret.CollectedTax.Total()

	credits := a.itc(ret.CollectedTax)
	ret.InputTaxCredits = credits.Total()
	ret.NetTaxOwing = decimal.Max(decimal.Zero, helpers.RoundMoney(ret.TotalTaxCollected.Sub(ret.InputTaxCredits)))
	ret.AuditRisk = AuditRisk(ret.IndigenousCount, ret.CalculationCount)

	if err := ret.Validate(); err != nil {
		return business.TaxReturn{}, err
	}
	return ret, nil
}

// RemittanceFor derives the payment obligation of a return being filed, or
// nil when nothing is owed. Per-type amounts are allocated in cents so they
// sum to NetTaxOwing.
func (a *ReturnAggregator) RemittanceFor(ret business.TaxReturn, newID func() uuid.UUID) *business.Remittance {
	if !ret.NetTaxOwing.IsPositive() {
		return nil
	}
	now := a.now().UTC()
	return &business.Remittance{
		RemittanceID: newID(),
		ReturnID:     ret.ReturnID,
		EntityID:     ret.EntityID,
		Amounts:      helpers.AllocateCents(ret.CollectedTax.Sub(a.itc(ret.CollectedTax)), ret.NetTaxOwing),
		TotalAmount:  ret.NetTaxOwing,
		DueDate:      ret.DueDate,
		Status:       business.RemittanceStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
