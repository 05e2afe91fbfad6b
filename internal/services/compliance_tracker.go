package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// ComplianceTracker recomputes an entity's ComplianceRecord from its returns
// and remittances. Nothing is carried over from earlier assessments.
type ComplianceTracker struct {
	store  interfaces.TaxStore
	calls  storeCaller
	now    func() time.Time
	logger *zap.Logger
}

// NewComplianceTracker creates a tracker over the tax store
func NewComplianceTracker(store interfaces.TaxStore, storeTimeout time.Duration, now func() time.Time) *ComplianceTracker {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	if now == nil {
		now = time.Now
	}
	log := logger.ForComponent(logger.ComponentCompliance)
	return &ComplianceTracker{
		store:  store,
		calls:  storeCaller{timeout: storeTimeout, retry: NewStoreRetry(100*time.Millisecond, log)},
		now:    now,
		logger: log,
	}
}

// RiskLevelFor maps a risk factor count to a level: 0 low, 1 medium, 2+ high.
func RiskLevelFor(factors int) business.RiskLevel {
	switch {
	case factors <= 0:
		return business.RiskLevelLow
	case factors == 1:
		return business.RiskLevelMedium
	default:
		return business.RiskLevelHigh
	}
}

// Assess derives a compliance record from returns and remittances at now.
func Assess(entityID string, returns []business.TaxReturn, remittances []business.Remittance, now time.Time) business.ComplianceRecord {
	outstanding := lo.Filter(returns, func(r business.TaxReturn, _ int) bool {
		return r.IsOutstanding(now)
	})
	openRemittances := lo.Filter(remittances, func(r business.Remittance, _ int) bool {
		return r.IsOutstanding()
	})
	overdue := lo.Filter(openRemittances, func(r business.Remittance, _ int) bool {
		return r.Status == business.RemittanceStatusOverdue
	})

	balance := decimal.Zero
	for _, r := range openRemittances {
		balance = balance.Add(r.TotalAmount)
	}
	overdueBalance := decimal.Zero
	for _, r := range overdue {
		overdueBalance = overdueBalance.Add(r.TotalAmount)
	}

	var factors []string
	if len(outstanding) > 0 {
		periods := lo.Map(outstanding, func(r business.TaxReturn, _ int) string { return r.Period })
		sort.Strings(periods)
		factors = append(factors, fmt.Sprintf("%d return(s) past due: %s", len(outstanding), strings.Join(periods, ", ")))
	}
	if len(overdue) > 0 {
		factors = append(factors, fmt.Sprintf("%d overdue remittance(s) totalling %s", len(overdue), helpers.FormatMoney(overdueBalance)))
	}
	if latest, ok := latestFiled(returns); ok && latest.AuditRisk == business.RiskLevelHigh {
		factors = append(factors, fmt.Sprintf("latest filed return %s has high audit risk", latest.Period))
	}

	return business.ComplianceRecord{
		EntityID:           entityID,
		FilingCompliant:    len(outstanding) == 0,
		PaymentCompliant:   len(overdue) == 0,
		OutstandingReturns: uint32(len(outstanding)),
		OutstandingBalance: balance,
		RiskLevel:          RiskLevelFor(len(factors)),
		RiskFactors:        lo.Ternary(factors == nil, []string{}, factors),
		LastAssessment:     now,
	}
}

func latestFiled(returns []business.TaxReturn) (business.TaxReturn, bool) {
	var latest business.TaxReturn
	found := false
	for _, r := range returns {
		if r.Status != business.ReturnStatusFiled || r.FiledAt == nil {
			continue
		}
		if !found || r.FiledAt.After(*latest.FiledAt) {
			latest = r
			found = true
		}
	}
	return latest, found
}

// CheckCompliance recomputes and stores the entity's compliance record.
func (t *ComplianceTracker) CheckCompliance(ctx context.Context, entityID string) (*business.ComplianceRecord, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "entity_id", Message: "is required"})
	}

	var returns []business.TaxReturn
	if err := t.calls.call(ctx, "list tax returns", func(ctx context.Context) error {
		var err error
		returns, err = t.store.ListTaxReturnsByEntity(ctx, entityID)
		return err
	}); err != nil {
		return nil, err
	}
	var remittances []business.Remittance
	if err := t.calls.call(ctx, "list remittances", func(ctx context.Context) error {
		var err error
		remittances, err = t.store.ListRemittancesByEntity(ctx, entityID)
		return err
	}); err != nil {
		return nil, err
	}

	record := Assess(entityID, returns, remittances, t.now().UTC())
	if err := t.calls.call(ctx, "upsert compliance record", func(ctx context.Context) error {
		return t.store.UpsertComplianceRecord(ctx, record)
	}); err != nil {
		return nil, err
	}

	t.logger.Info("Assessed compliance",
		zap.String("entity_id", entityID),
		zap.Uint32("outstanding_returns", record.OutstandingReturns),
		zap.String("outstanding_balance", record.OutstandingBalance.String()),
		zap.String("risk_level", string(record.RiskLevel)))
	return &record, nil
}

// RunAssessment marks overdue remittances and reassesses every entity.
// A failing entity is counted and skipped.
func (t *ComplianceTracker) RunAssessment(ctx context.Context) (*business.ComplianceRunResults, error) {
	results := &business.ComplianceRunResults{}

	if err := t.calls.call(ctx, "mark overdue remittances", func(ctx context.Context) error {
		n, err := t.store.MarkOverdueRemittances(ctx, t.now().UTC())
		results.OverdueRemittances = n
		return err
	}); err != nil {
		return nil, err
	}

	var entities []string
	if err := t.calls.call(ctx, "list entities", func(ctx context.Context) error {
		var err error
		entities, err = t.store.ListEntityIDs(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	results.Entities = len(entities)

	for _, entityID := range entities {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		record, err := t.CheckCompliance(ctx, entityID)
		if err != nil {
			results.Failed++
			t.logger.Error("Compliance assessment failed",
				zap.String("entity_id", entityID),
				zap.Error(err))
			continue
		}
		results.Assessed++
		switch record.RiskLevel {
		case business.RiskLevelHigh:
			results.HighRiskEntities++
		case business.RiskLevelMedium:
			results.MediumRiskEntities++
		}
	}
	return results, nil
}
