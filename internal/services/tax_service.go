package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// TaxService calculates and persists transaction tax
type TaxService struct {
	calculator *TransactionCalculator
	rates      interfaces.RateProvider
	store      interfaces.TaxStore
	calls      storeCaller
	logger     *zap.Logger
}

// NewTaxService creates a new tax service
func NewTaxService(calculator *TransactionCalculator, rates interfaces.RateProvider, store interfaces.TaxStore, storeTimeout time.Duration) *TaxService {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	log := logger.ForComponent(logger.ComponentCalculator)
	return &TaxService{
		calculator: calculator,
		rates:      rates,
		store:      store,
		calls:      storeCaller{timeout: storeTimeout, retry: NewStoreRetry(100*time.Millisecond, log)},
		logger:     log,
	}
}

// CalculateTax calculates tax on a transaction and records the result.
// Exemption resolution is retried once when the record store is unavailable.
func (s *TaxService) CalculateTax(ctx context.Context, p params.CalculateTaxParams) (*business.TaxCalculation, error) {
	var calc business.TaxCalculation
	err := s.calls.retry.Do(ctx, "calculate tax", func() error {
		var err error
		calc, err = s.calculator.Calculate(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.calls.call(ctx, "create tax calculation", func(ctx context.Context) error {
		return s.store.CreateTaxCalculation(ctx, calc)
	}); err != nil {
		s.logger.Error("Failed to record tax calculation",
			zap.String("calculation_id", calc.CalculationID.String()),
			zap.Error(err))
		return nil, err
	}
	return &calc, nil
}

// CorrectCalculation records a replacement for an existing calculation. The
// correction belongs to the same entity and keeps the original tax point so
// it is filed in the same period.
func (s *TaxService) CorrectCalculation(ctx context.Context, originalID uuid.UUID, p params.CalculateTaxParams) (*business.TaxCalculation, error) {
	original, err := s.GetCalculation(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if p.EntityID != "" && p.EntityID != original.EntityID {
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "entity_id", Message: "must match the corrected calculation"})
	}

	p.EntityID = original.EntityID
	p.SupersedesID = &original.CalculationID
	taxPoint := original.TaxPointAt
	p.TaxPointAt = &taxPoint
	if p.Jurisdiction == "" {
		p.Jurisdiction = original.Jurisdiction
	}
	if p.BuyerID == "" {
		p.BuyerID = original.BuyerID
	}

	calc, err := s.CalculateTax(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Recorded calculation correction",
		zap.String("calculation_id", calc.CalculationID.String()),
		zap.String("supersedes_id", originalID.String()))
	return calc, nil
}

// GetCalculation retrieves a recorded calculation
func (s *TaxService) GetCalculation(ctx context.Context, id uuid.UUID) (*business.TaxCalculation, error) {
	var calc business.TaxCalculation
	if err := s.calls.call(ctx, "get tax calculation", func(ctx context.Context) error {
		var err error
		calc, err = s.store.GetTaxCalculation(ctx, id)
		return err
	}); err != nil {
		return nil, err
	}
	return &calc, nil
}

// ListJurisdictions returns the rates of every configured jurisdiction
func (s *TaxService) ListJurisdictions() []business.JurisdictionRates {
	return s.rates.ListRates()
}
