package services

import (
	"context"
	"strings"

	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// UpsertBandExemption records a band council exemption.
func (r *StatusCardRegistry) UpsertBandExemption(ctx context.Context, p params.UpsertBandExemptionParams) (*business.BandExemptionRecord, error) {
	claim, err := NormalizeClaim(business.ExemptionClaim{BandNumber: p.BandNumber})
	if err != nil {
		return nil, err
	}
	if claim.BandNumber == "" {
		return nil, taxerr.InvalidExemptionClaim(taxerr.FieldError{Field: "band_number", Message: "is required"})
	}

	now := r.now().UTC()
	record := business.BandExemptionRecord{
		BandNumber:    claim.BandNumber,
		BandName:      strings.TrimSpace(p.BandName),
		Jurisdictions: make([]string, 0, len(p.Jurisdictions)),
		Active:        p.Active,
		ValidFrom:     now,
		ValidUntil:    p.ValidUntil,
		UpdatedAt:     now,
	}
	if p.ValidFrom != nil {
		record.ValidFrom = p.ValidFrom.UTC()
	}
	for _, j := range p.Jurisdictions {
		record.Jurisdictions = append(record.Jurisdictions, normalizeJurisdiction(j))
	}

	var saved business.BandExemptionRecord
	if err := r.calls.call(ctx, "upsert band exemption", func(ctx context.Context) error {
		var err error
		saved, err = r.records.UpsertBandExemption(ctx, record)
		return err
	}); err != nil {
		return nil, err
	}
	r.logger.Info("Saved band exemption",
		zap.String("band_number", saved.BandNumber),
		zap.Bool("active", saved.Active))
	return &saved, nil
}

// UpsertTreatyExemption records the relief of a treaty in one jurisdiction.
func (r *StatusCardRegistry) UpsertTreatyExemption(ctx context.Context, p params.UpsertTreatyExemptionParams) (*business.TreatyExemptionRecord, error) {
	claim, err := NormalizeClaim(business.ExemptionClaim{TreatyNumber: p.TreatyNumber, Jurisdiction: p.Jurisdiction})
	if err != nil {
		return nil, err
	}

	var fields []taxerr.FieldError
	if claim.TreatyNumber == "" {
		fields = append(fields, taxerr.FieldError{Field: "treaty_number", Message: "is required"})
	}
	if claim.Jurisdiction == "" {
		fields = append(fields, taxerr.FieldError{Field: "jurisdiction", Message: "is required"})
	}
	pct, pctErr := helpers.ParsePercentage(p.Percentage)
	if pctErr != nil {
		fields = append(fields, taxerr.FieldError{Field: "percentage", Message: pctErr.Error()})
	}
	if len(p.ExemptTaxTypes) == 0 {
		fields = append(fields, taxerr.FieldError{Field: "exempt_tax_types", Message: "at least one tax type is required"})
	}
	if len(fields) > 0 {
		return nil, taxerr.InvalidRequest(fields...)
	}

	now := r.now().UTC()
	record := business.TreatyExemptionRecord{
		TreatyNumber:   claim.TreatyNumber,
		Jurisdiction:   claim.Jurisdiction,
		ExemptTaxTypes: p.ExemptTaxTypes,
		Percentage:     pct,
		Active:         p.Active,
		ValidFrom:      now,
		ValidUntil:     p.ValidUntil,
		UpdatedAt:      now,
	}
	if p.ValidFrom != nil {
		record.ValidFrom = p.ValidFrom.UTC()
	}

	var saved business.TreatyExemptionRecord
	if err := r.calls.call(ctx, "upsert treaty exemption", func(ctx context.Context) error {
		var err error
		saved, err = r.records.UpsertTreatyExemption(ctx, record)
		return err
	}); err != nil {
		return nil, err
	}
	r.logger.Info("Saved treaty exemption",
		zap.String("treaty_number", saved.TreatyNumber),
		zap.String("jurisdiction", saved.Jurisdiction),
		zap.String("percentage", saved.Percentage.String()))
	return &saved, nil
}
