package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// FilingService prepares returns and drives them through
// draft -> ready -> filed, deriving remittances on filing.
type FilingService struct {
	store      interfaces.TaxStore
	aggregator *ReturnAggregator
	gateway    interfaces.FilingGateway
	compliance interfaces.ComplianceService
	calls      storeCaller
	newID      func() uuid.UUID
	now        func() time.Time
	logger     *zap.Logger
}

// FilingServiceConfig holds the collaborators of a FilingService
type FilingServiceConfig struct {
	Store        interfaces.TaxStore
	Aggregator   *ReturnAggregator
	Gateway      interfaces.FilingGateway
	Compliance   interfaces.ComplianceService
	StoreTimeout time.Duration
	Retry        StoreRetry
	NewID        func() uuid.UUID
	Now          func() time.Time
}

// NewFilingService creates a filing service
func NewFilingService(cfg FilingServiceConfig) *FilingService {
	if cfg.Aggregator == nil {
		cfg.Aggregator = NewReturnAggregator(nil, cfg.Now)
	}
	if cfg.Gateway == nil {
		cfg.Gateway = NewLocalFilingGateway()
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.New
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := logger.ForComponent(logger.ComponentFiling)
	if cfg.Retry.InitialInterval <= 0 {
		cfg.Retry = NewStoreRetry(100*time.Millisecond, log)
	}
	return &FilingService{
		store:      cfg.Store,
		aggregator: cfg.Aggregator,
		gateway:    cfg.Gateway,
		compliance: cfg.Compliance,
		calls:      storeCaller{timeout: cfg.StoreTimeout, retry: cfg.Retry},
		newID:      cfg.NewID,
		now:        cfg.Now,
		logger:     log,
	}
}

// FileReturn aggregates the entity's calculations for the period into a Draft
// return and claims them. Missing dates are derived from the period label.
func (s *FilingService) FileReturn(ctx context.Context, p params.FileReturnParams) (*business.TaxReturn, error) {
	p, err := normalizeFileReturnParams(p)
	if err != nil {
		return nil, err
	}

	var existing []business.TaxReturn
	if err := s.calls.call(ctx, "list tax returns", func(ctx context.Context) error {
		var err error
		existing, err = s.store.ListTaxReturnsByEntity(ctx, p.EntityID)
		return err
	}); err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.StartDate.Before(p.EndDate) && p.StartDate.Before(r.EndDate) {
			return nil, taxerr.PeriodOverlap("period %s overlaps return %s (%s)", p.Period, r.ReturnID, r.Period)
		}
	}

	calcs, err := s.listCalculations(ctx, p.EntityID, p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	ret, err := s.aggregator.Aggregate(params.AggregateReturnParams{
		ReturnID:   id,
		LineageID:  id,
		Version:    1,
		EntityID:   p.EntityID,
		ReturnType: p.ReturnType,
		Period:     p.Period,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}, calcs)
	if err != nil {
		return nil, err
	}

	if err := s.calls.call(ctx, "create tax return", func(ctx context.Context) error {
		return s.store.CreateTaxReturn(ctx, ret)
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Prepared draft tax return",
		zap.String("return_id", ret.ReturnID.String()),
		zap.String("entity_id", ret.EntityID),
		zap.String("period", ret.Period),
		zap.Int("calculations", ret.CalculationCount),
		zap.String("net_tax_owing", ret.NetTaxOwing.String()),
		zap.String("audit_risk", string(ret.AuditRisk)))
	return &ret, nil
}

// GetReturn returns a stored return
func (s *FilingService) GetReturn(ctx context.Context, id uuid.UUID) (*business.TaxReturn, error) {
	ret, err := s.getReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

// MarkReady records the review of a Draft return.
func (s *FilingService) MarkReady(ctx context.Context, p params.MarkReadyParams) (*business.TaxReturn, error) {
	if strings.TrimSpace(p.ReviewedBy) == "" {
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "reviewed_by", Message: "is required"})
	}
	ret, err := s.getReturn(ctx, p.ReturnID)
	if err != nil {
		return nil, err
	}
	if ret.Status != business.ReturnStatusDraft {
		return nil, taxerr.InvalidReturnState(ret.ReturnID.String(), string(ret.Status), "mark ready")
	}

	ret.Status = business.ReturnStatusReady
	ret.ReviewedBy = p.ReviewedBy
	ret.UpdatedAt = s.now().UTC()
	if err := s.calls.call(ctx, "update tax return", func(ctx context.Context) error {
		return s.store.UpdateTaxReturnStatus(ctx, ret, business.ReturnStatusDraft)
	}); err != nil {
		return nil, s.staleTransition(ctx, err, ret.ReturnID, "mark ready")
	}
	return &ret, nil
}

// SubmitReturn files a Draft or Ready return. A Draft passes through Ready in
// the same step. A positive net owing creates exactly one pending remittance.
func (s *FilingService) SubmitReturn(ctx context.Context, p params.SubmitReturnParams) (*business.SubmitReturnResult, error) {
	if strings.TrimSpace(p.ApprovedBy) == "" {
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "approved_by", Message: "is required"})
	}
	ret, err := s.getReturn(ctx, p.ReturnID)
	if err != nil {
		return nil, err
	}
	expected := ret.Status
	if expected != business.ReturnStatusDraft && expected != business.ReturnStatusReady {
		return nil, taxerr.InvalidReturnState(ret.ReturnID.String(), string(ret.Status), "submit")
	}
	if ret.ReviewedBy == "" {
		ret.ReviewedBy = p.ApprovedBy
	}

	confirmation, err := s.gateway.Submit(ctx, ret)
	if err != nil {
		return nil, taxerr.StoreUnavailable("filing submission", err)
	}

	now := s.now().UTC()
	ret.Status = business.ReturnStatusFiled
	ret.ApprovedBy = p.ApprovedBy
	ret.ConfirmationNumber = confirmation
	ret.FiledAt = &now
	ret.UpdatedAt = now
	remittance := s.aggregator.RemittanceFor(ret, s.newID)
	if remittance != nil {
		if err := remittance.Validate(); err != nil {
			s.logger.Error("Remittance failed validation", zap.String("return_id", ret.ReturnID.String()), zap.Error(err))
			return nil, err
		}
	}

	err = s.calls.call(ctx, "file tax return", func(ctx context.Context) error {
		return s.store.FileTaxReturn(ctx, ret, expected, remittance)
	})
	if errors.Is(err, db.ErrStaleStatus) {
		// A retried write may already have committed.
		current, getErr := s.getReturn(ctx, ret.ReturnID)
		if getErr == nil && current.Status == business.ReturnStatusFiled && current.ConfirmationNumber == confirmation {
			err = nil
		}
	}
	if err != nil {
		return nil, s.staleTransition(ctx, err, ret.ReturnID, "submit")
	}

	fields := []zap.Field{
		zap.String("return_id", ret.ReturnID.String()),
		zap.String("entity_id", ret.EntityID),
		zap.String("confirmation_number", confirmation),
		zap.String("net_tax_owing", ret.NetTaxOwing.String()),
	}
	if remittance != nil {
		fields = append(fields, zap.String("remittance_id", remittance.RemittanceID.String()))
	}
	s.logger.Info("Filed tax return", fields...)

	s.refreshCompliance(ctx, ret.EntityID)
	return &business.SubmitReturnResult{Return: ret, ConfirmationNumber: confirmation, Remittance: remittance}, nil
}

// AmendReturn creates the next Draft version of a filed return, re-aggregated
// from the period's current calculations. The filed return is left untouched.
func (s *FilingService) AmendReturn(ctx context.Context, id uuid.UUID) (*business.TaxReturn, error) {
	original, err := s.getReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status != business.ReturnStatusFiled {
		return nil, taxerr.InvalidReturnState(original.ReturnID.String(), string(original.Status), "amend")
	}

	var lineage []business.TaxReturn
	if err := s.calls.call(ctx, "list tax returns", func(ctx context.Context) error {
		var err error
		lineage, err = s.store.ListTaxReturnsByEntity(ctx, original.EntityID)
		return err
	}); err != nil {
		return nil, err
	}
	for _, r := range lineage {
		if r.LineageID == original.LineageID && r.Version > original.Version {
			return nil, taxerr.InvalidReturnState(original.ReturnID.String(), string(original.Status),
				fmt.Sprintf("amend (already amended by version %d)", r.Version))
		}
	}

	calcs, err := s.listCalculations(ctx, original.EntityID, original.StartDate, original.EndDate)
	if err != nil {
		return nil, err
	}
	amendsID := original.ReturnID
	ret, err := s.aggregator.Aggregate(params.AggregateReturnParams{
		ReturnID:       s.newID(),
		LineageID:      original.LineageID,
		Version:        original.Version + 1,
		AmendsReturnID: &amendsID,
		EntityID:       original.EntityID,
		ReturnType:     original.ReturnType,
		Period:         original.Period,
		StartDate:      original.StartDate,
		EndDate:        original.EndDate,
	}, calcs)
	if err != nil {
		return nil, err
	}

	if err := s.calls.call(ctx, "create tax return", func(ctx context.Context) error {
		return s.store.CreateTaxReturn(ctx, ret)
	}); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, taxerr.InvalidReturnState(original.ReturnID.String(), string(original.Status),
				fmt.Sprintf("amend (version %d already exists)", ret.Version))
		}
		return nil, err
	}

	s.logger.Info("Created amended tax return",
		zap.String("return_id", ret.ReturnID.String()),
		zap.String("amends_return_id", original.ReturnID.String()),
		zap.Int("version", ret.Version))
	return &ret, nil
}

// RecordPayment marks a pending or overdue remittance as paid.
func (s *FilingService) RecordPayment(ctx context.Context, remittanceID uuid.UUID) (*business.Remittance, error) {
	var rem business.Remittance
	if err := s.calls.call(ctx, "get remittance", func(ctx context.Context) error {
		var err error
		rem, err = s.store.GetRemittance(ctx, remittanceID)
		return err
	}); err != nil {
		return nil, err
	}
	if !rem.IsOutstanding() {
		return nil, taxerr.InvalidReturnState(rem.RemittanceID.String(), string(rem.Status), "record payment for remittance")
	}

	expected := rem.Status
	now := s.now().UTC()
	rem.Status = business.RemittanceStatusPaid
	rem.PaidAt = &now
	rem.UpdatedAt = now
	if err := s.calls.call(ctx, "update remittance", func(ctx context.Context) error {
		return s.store.UpdateRemittanceStatus(ctx, rem, expected)
	}); err != nil {
		if errors.Is(err, db.ErrStaleStatus) {
			return nil, taxerr.InvalidReturnState(rem.RemittanceID.String(), "changed", "record payment for remittance")
		}
		return nil, err
	}

	s.logger.Info("Recorded remittance payment",
		zap.String("remittance_id", rem.RemittanceID.String()),
		zap.String("entity_id", rem.EntityID),
		zap.String("amount", rem.TotalAmount.String()))
	s.refreshCompliance(ctx, rem.EntityID)
	return &rem, nil
}

func (s *FilingService) getReturn(ctx context.Context, id uuid.UUID) (business.TaxReturn, error) {
	var ret business.TaxReturn
	err := s.calls.call(ctx, "get tax return", func(ctx context.Context) error {
		var err error
		ret, err = s.store.GetTaxReturn(ctx, id)
		return err
	})
	return ret, err
}

func (s *FilingService) listCalculations(ctx context.Context, entityID string, start, end time.Time) ([]business.TaxCalculation, error) {
	var calcs []business.TaxCalculation
	err := s.calls.call(ctx, "list tax calculations", func(ctx context.Context) error {
		var err error
		calcs, err = s.store.ListTaxCalculationsForPeriod(ctx, entityID, start, end)
		return err
	})
	return calcs, err
}

// staleTransition reports a lost compare-and-set as InvalidReturnState with
// the status now stored.
func (s *FilingService) staleTransition(ctx context.Context, err error, id uuid.UUID, action string) error {
	if !errors.Is(err, db.ErrStaleStatus) {
		return err
	}
	status := "unknown"
	if current, getErr := s.getReturn(ctx, id); getErr == nil {
		status = string(current.Status)
	}
	return taxerr.InvalidReturnState(id.String(), status, action)
}

func (s *FilingService) refreshCompliance(ctx context.Context, entityID string) {
	if s.compliance == nil {
		return
	}
	if _, err := s.compliance.CheckCompliance(ctx, entityID); err != nil {
		s.logger.Warn("Failed to refresh compliance after filing change",
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func normalizeFileReturnParams(p params.FileReturnParams) (params.FileReturnParams, error) {
	var fields []taxerr.FieldError
	p.EntityID = strings.TrimSpace(p.EntityID)
	p.ReturnType = strings.ToLower(strings.TrimSpace(p.ReturnType))
	p.Period = strings.ToUpper(strings.TrimSpace(p.Period))

	if p.EntityID == "" {
		fields = append(fields, taxerr.FieldError{Field: "entity_id", Message: "is required"})
	}
	if !helpers.IsValidReturnType(p.ReturnType) {
		fields = append(fields, taxerr.FieldError{Field: "return_type", Message: "must be monthly, quarterly or annual"})
	}
	if p.Period == "" {
		fields = append(fields, taxerr.FieldError{Field: "period", Message: "is required"})
	}
	if len(fields) > 0 {
		return p, taxerr.InvalidRequest(fields...)
	}

	if p.StartDate.IsZero() && p.EndDate.IsZero() {
		start, end, err := helpers.PeriodBounds(p.ReturnType, p.Period)
		if err != nil {
			return p, taxerr.InvalidRequest(taxerr.FieldError{Field: "period", Message: err.Error()})
		}
		p.StartDate, p.EndDate = start, end
	}
	if !p.EndDate.After(p.StartDate) {
		return p, taxerr.InvalidRequest(taxerr.FieldError{Field: "end_date", Message: "must be after start_date"})
	}
	p.StartDate, p.EndDate = p.StartDate.UTC(), p.EndDate.UTC()
	return p, nil
}
