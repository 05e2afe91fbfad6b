package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/types/business"
)

//go:generate mockgen -source=stores.go -destination=../mocks/mock_stores.go -package=mocks

// RateProvider returns the tax rates of a jurisdiction
type RateProvider interface {
	GetRates(code string) (business.JurisdictionRates, bool)
	ListRates() []business.JurisdictionRates
}

// ReliefPolicy returns the off-reserve PST-family relief percentage of a jurisdiction
type ReliefPolicy interface {
	OffReserveReliefPercentage(code string) decimal.Decimal
}

// ExemptionRecordStore looks up and records exemption eligibility.
// Lookups return taxerr.ErrNotFound when no record matches and
// CreateStatusCard returns db.ErrUniqueViolation for an already registered card.
type ExemptionRecordStore interface {
	GetStatusCardByNumber(ctx context.Context, cardNumber string) (business.StatusCardRecord, error)
	CreateStatusCard(ctx context.Context, record business.StatusCardRecord) (business.StatusCardRecord, error)
	UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (business.StatusCardRecord, error)
	GetBandExemption(ctx context.Context, bandNumber string) (business.BandExemptionRecord, error)
	UpsertBandExemption(ctx context.Context, record business.BandExemptionRecord) (business.BandExemptionRecord, error)
	GetTreatyExemption(ctx context.Context, treatyNumber, jurisdiction string) (business.TreatyExemptionRecord, error)
	UpsertTreatyExemption(ctx context.Context, record business.TreatyExemptionRecord) (business.TreatyExemptionRecord, error)
}

// TaxStore persists calculations, returns, remittances and compliance records.
// Every write returns only after the record is durable.
type TaxStore interface {
	// CreateTaxCalculation is idempotent on the calculation ID.
	CreateTaxCalculation(ctx context.Context, calc business.TaxCalculation) error
	GetTaxCalculation(ctx context.Context, id uuid.UUID) (business.TaxCalculation, error)
	ListTaxCalculationsForPeriod(ctx context.Context, entityID string, start, end time.Time) ([]business.TaxCalculation, error)

	// CreateTaxReturn stores the return and claims its calculations for the
	// return's lineage. A calculation claimed by another lineage fails the
	// whole write with taxerr.ErrPeriodOverlap.
	CreateTaxReturn(ctx context.Context, taxReturn business.TaxReturn) error
	GetTaxReturn(ctx context.Context, id uuid.UUID) (business.TaxReturn, error)
	ListTaxReturnsByEntity(ctx context.Context, entityID string) ([]business.TaxReturn, error)
	// UpdateTaxReturnStatus writes taxReturn only if the stored status still equals
	// expected; otherwise it returns db.ErrStaleStatus.
	UpdateTaxReturnStatus(ctx context.Context, taxReturn business.TaxReturn, expected business.ReturnStatus) error
	// FileTaxReturn transitions taxReturn to filed and stores the remittance, if any,
	// atomically, with the same compare-and-set rule as UpdateTaxReturnStatus.
	FileTaxReturn(ctx context.Context, taxReturn business.TaxReturn, expected business.ReturnStatus, remittance *business.Remittance) error

	GetRemittance(ctx context.Context, id uuid.UUID) (business.Remittance, error)
	ListRemittancesByEntity(ctx context.Context, entityID string) ([]business.Remittance, error)
	UpdateRemittanceStatus(ctx context.Context, remittance business.Remittance, expected business.RemittanceStatus) error
	// MarkOverdueRemittances moves pending remittances due before asOf to overdue.
	MarkOverdueRemittances(ctx context.Context, asOf time.Time) (int, error)

	UpsertComplianceRecord(ctx context.Context, record business.ComplianceRecord) error
	GetComplianceRecord(ctx context.Context, entityID string) (business.ComplianceRecord, error)
	ListEntityIDs(ctx context.Context) ([]string, error)
}
