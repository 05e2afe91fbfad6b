package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
)

//go:generate mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks

// ExemptionResolver resolves buyer claims into exemption decisions
type ExemptionResolver interface {
	Resolve(ctx context.Context, claim business.ExemptionClaim) (business.ExemptionDecision, error)
}

// TaxService handles transaction tax calculation
type TaxService interface {
	CalculateTax(ctx context.Context, p params.CalculateTaxParams) (*business.TaxCalculation, error)
	CorrectCalculation(ctx context.Context, originalID uuid.UUID, p params.CalculateTaxParams) (*business.TaxCalculation, error)
	GetCalculation(ctx context.Context, id uuid.UUID) (*business.TaxCalculation, error)
	ListJurisdictions() []business.JurisdictionRates
}

// StatusCardService validates status cards and maintains exemption records
type StatusCardService interface {
	ValidateStatusCard(ctx context.Context, p params.ValidateStatusCardParams) (*business.StatusCardValidation, error)
	UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (*business.StatusCardRecord, error)
	UpsertBandExemption(ctx context.Context, p params.UpsertBandExemptionParams) (*business.BandExemptionRecord, error)
	UpsertTreatyExemption(ctx context.Context, p params.UpsertTreatyExemptionParams) (*business.TreatyExemptionRecord, error)
}

// FilingService drives tax returns through the filing state machine
type FilingService interface {
	FileReturn(ctx context.Context, p params.FileReturnParams) (*business.TaxReturn, error)
	GetReturn(ctx context.Context, id uuid.UUID) (*business.TaxReturn, error)
	MarkReady(ctx context.Context, p params.MarkReadyParams) (*business.TaxReturn, error)
	SubmitReturn(ctx context.Context, p params.SubmitReturnParams) (*business.SubmitReturnResult, error)
	AmendReturn(ctx context.Context, id uuid.UUID) (*business.TaxReturn, error)
	RecordPayment(ctx context.Context, remittanceID uuid.UUID) (*business.Remittance, error)
}

// ComplianceService derives entity compliance status
type ComplianceService interface {
	CheckCompliance(ctx context.Context, entityID string) (*business.ComplianceRecord, error)
	RunAssessment(ctx context.Context) (*business.ComplianceRunResults, error)
}
