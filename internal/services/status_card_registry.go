package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// DefaultStatusCardValidityYears is the validity window given to cards
// registered without a printed expiry.
const DefaultStatusCardValidityYears = 5

// StatusCardRegistry validates presented status cards, registering unknown
// ones, and maintains band and treaty exemption records.
type StatusCardRegistry struct {
	records       interfaces.ExemptionRecordStore
	calls         storeCaller
	validityYears int
	newID         func() uuid.UUID
	now           func() time.Time
	logger        *zap.Logger
}

// StatusCardRegistryConfig holds the collaborators of a StatusCardRegistry.
// Records should already invalidate cached decisions on write.
type StatusCardRegistryConfig struct {
	Records       interfaces.ExemptionRecordStore
	ValidityYears int
	StoreTimeout  time.Duration
	NewID         func() uuid.UUID
	Now           func() time.Time
}

// NewStatusCardRegistry creates a registry
func NewStatusCardRegistry(cfg StatusCardRegistryConfig) *StatusCardRegistry {
	if cfg.ValidityYears <= 0 {
		cfg.ValidityYears = DefaultStatusCardValidityYears
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
	log := logger.ForComponent(logger.ComponentExemption)
	return &StatusCardRegistry{
		records:       cfg.Records,
		calls:         storeCaller{timeout: cfg.StoreTimeout, retry: NewStoreRetry(100*time.Millisecond, log)},
		validityYears: cfg.ValidityYears,
		newID:         cfg.NewID,
		now:           cfg.Now,
		logger:        log,
	}
}

// ValidateStatusCard checks a presented card against the registry. A card
// seen for the first time is registered; losing a concurrent registration
// race returns the record that won.
func (r *StatusCardRegistry) ValidateStatusCard(ctx context.Context, p params.ValidateStatusCardParams) (*business.StatusCardValidation, error) {
	claim, err := NormalizeClaim(business.ExemptionClaim{StatusCardNumber: p.CardNumber, BandNumber: p.BandNumber})
	if err != nil {
		return nil, err
	}
	if claim.StatusCardNumber == "" {
		return nil, taxerr.InvalidExemptionClaim(taxerr.FieldError{Field: "card_number", Message: "is required"})
	}
	if strings.TrimSpace(p.HolderName) == "" {
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "holder_name", Message: "is required"})
	}

	now := r.now().UTC()
	cardNumber := claim.StatusCardNumber
	registered := false

	record, err := r.getStatusCard(ctx, cardNumber)
	switch {
	case err == nil:
	case errors.Is(err, taxerr.ErrNotFound):
		if p.ValidUntil != nil && p.ValidUntil.Before(now) {
			return &business.StatusCardValidation{Valid: false, Status: business.StatusCardStatusExpired}, nil
		}
		record, registered, err = r.register(ctx, cardNumber, claim.BandNumber, p, now)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !holderMatches(record, p) {
		r.logger.Warn("Status card holder mismatch", zap.String("card_number", maskCardNumber(cardNumber)))
		return &business.StatusCardValidation{Valid: false, Status: business.StatusCardStatusHolderMismatch}, nil
	}

	validUntil := record.ValidUntil
	result := &business.StatusCardValidation{
		Valid:      record.IsActiveAt(now),
		Status:     record.EffectiveStatus(now),
		Registered: registered,
		ValidUntil: &validUntil,
	}
	if result.Valid {
		id := record.ExemptionID
		result.ExemptionID = &id
	}
	return result, nil
}

func (r *StatusCardRegistry) register(ctx context.Context, cardNumber, bandNumber string, p params.ValidateStatusCardParams, now time.Time) (business.StatusCardRecord, bool, error) {
	validUntil := now.AddDate(r.validityYears, 0, 0)
	if p.ValidUntil != nil {
		validUntil = p.ValidUntil.UTC()
	}
	candidate := business.StatusCardRecord{
		ExemptionID: r.newID(),
		CardNumber:  cardNumber,
		HolderName:  strings.TrimSpace(p.HolderName),
		DateOfBirth: p.DateOfBirth,
		BandNumber:  bandNumber,
		Status:      business.StatusCardStatusActive,
		ValidFrom:   now,
		ValidUntil:  validUntil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created business.StatusCardRecord
	err := r.calls.call(ctx, "create status card", func(ctx context.Context) error {
		var err error
		created, err = r.records.CreateStatusCard(ctx, candidate)
		return err
	})
	if errors.Is(err, db.ErrUniqueViolation) {
		existing, getErr := r.getStatusCard(ctx, cardNumber)
		return existing, false, getErr
	}
	if err != nil {
		return business.StatusCardRecord{}, false, err
	}

	r.logger.Info("Registered status card",
		zap.String("card_number", maskCardNumber(cardNumber)),
		zap.String("exemption_id", created.ExemptionID.String()))
	return created, true, nil
}

// UpdateStatusCardStatus suspends, revokes or reactivates a registered card.
func (r *StatusCardRegistry) UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (*business.StatusCardRecord, error) {
	claim, err := NormalizeClaim(business.ExemptionClaim{StatusCardNumber: cardNumber})
	if err != nil {
		return nil, err
	}
	switch status {
	case business.StatusCardStatusActive, business.StatusCardStatusSuspended, business.StatusCardStatusRevoked:
	default:
		return nil, taxerr.InvalidRequest(taxerr.FieldError{Field: "status", Message: "must be active, suspended or revoked"})
	}

	var updated business.StatusCardRecord
	if err := r.calls.call(ctx, "update status card", func(ctx context.Context) error {
		var err error
		updated, err = r.records.UpdateStatusCardStatus(ctx, claim.StatusCardNumber, status)
		return err
	}); err != nil {
		return nil, err
	}

	r.logger.Info("Updated status card",
		zap.String("card_number", maskCardNumber(claim.StatusCardNumber)),
		zap.String("status", string(status)))
	return &updated, nil
}

func (r *StatusCardRegistry) getStatusCard(ctx context.Context, cardNumber string) (business.StatusCardRecord, error) {
	var record business.StatusCardRecord
	err := r.calls.call(ctx, "get status card", func(ctx context.Context) error {
		var err error
		record, err = r.records.GetStatusCardByNumber(ctx, cardNumber)
		return err
	})
	return record, err
}

func holderMatches(record business.StatusCardRecord, p params.ValidateStatusCardParams) bool {
	if normalizeName(record.HolderName) != normalizeName(p.HolderName) {
		return false
	}
	if record.DateOfBirth != nil && p.DateOfBirth != nil {
		return record.DateOfBirth.UTC().Format("2006-01-02") == p.DateOfBirth.UTC().Format("2006-01-02")
	}
	return true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func maskCardNumber(n string) string {
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}
