package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

const statusCardColumns = `exemption_id, card_number, holder_name, date_of_birth, band_number, status,
	valid_from, valid_until, created_at, updated_at`

const getStatusCardByNumber = `SELECT ` + statusCardColumns + ` FROM status_cards WHERE card_number = $1`

func (q *Queries) GetStatusCardByNumber(ctx context.Context, cardNumber string) (business.StatusCardRecord, error) {
	record, err := scanStatusCard(q.db.QueryRow(ctx, getStatusCardByNumber, cardNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, taxerr.NotFound("status card", cardNumber)
	}
	return record, err
}

const createStatusCard = `INSERT INTO status_cards (` + statusCardColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + statusCardColumns

// CreateStatusCard registers a card. A card number already on file returns ErrUniqueViolation.
func (q *Queries) CreateStatusCard(ctx context.Context, record business.StatusCardRecord) (business.StatusCardRecord, error) {
	created, err := scanStatusCard(q.db.QueryRow(ctx, createStatusCard,
		record.ExemptionID,
		record.CardNumber,
		record.HolderName,
		record.DateOfBirth,
		record.BandNumber,
		string(record.Status),
		record.ValidFrom,
		record.ValidUntil,
		record.CreatedAt,
		record.UpdatedAt,
	))
	if isUniqueViolation(err) {
		return created, ErrUniqueViolation
	}
	return created, err
}

const updateStatusCardStatus = `UPDATE status_cards SET status = $2, updated_at = $3
WHERE card_number = $1
RETURNING ` + statusCardColumns

func (q *Queries) UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (business.StatusCardRecord, error) {
	record, err := scanStatusCard(q.db.QueryRow(ctx, updateStatusCardStatus, cardNumber, string(status), time.Now().UTC()))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, taxerr.NotFound("status card", cardNumber)
	}
	return record, err
}

func scanStatusCard(row rowScanner) (business.StatusCardRecord, error) {
	var record business.StatusCardRecord
	var status string
	if err := row.Scan(
		&record.ExemptionID,
		&record.CardNumber,
		&record.HolderName,
		&record.DateOfBirth,
		&record.BandNumber,
		&status,
		&record.ValidFrom,
		&record.ValidUntil,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return record, err
	}
	record.Status = business.StatusCardStatus(status)
	record.ValidFrom = record.ValidFrom.UTC()
	record.ValidUntil = record.ValidUntil.UTC()
	return record, nil
}

const getBandExemption = `SELECT band_number, band_name, jurisdictions, active, valid_from, valid_until, updated_at
FROM band_exemptions WHERE band_number = $1`

func (q *Queries) GetBandExemption(ctx context.Context, bandNumber string) (business.BandExemptionRecord, error) {
	record, err := scanBandExemption(q.db.QueryRow(ctx, getBandExemption, bandNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, taxerr.NotFound("band exemption", bandNumber)
	}
	return record, err
}

const upsertBandExemption = `INSERT INTO band_exemptions (band_number, band_name, jurisdictions, active, valid_from, valid_until, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (band_number) DO UPDATE SET
	band_name = EXCLUDED.band_name,
	jurisdictions = EXCLUDED.jurisdictions,
	active = EXCLUDED.active,
	valid_from = EXCLUDED.valid_from,
	valid_until = EXCLUDED.valid_until,
	updated_at = EXCLUDED.updated_at
RETURNING band_number, band_name, jurisdictions, active, valid_from, valid_until, updated_at`

func (q *Queries) UpsertBandExemption(ctx context.Context, record business.BandExemptionRecord) (business.BandExemptionRecord, error) {
	jurisdictions, err := json.Marshal(record.Jurisdictions)
	if err != nil {
		return record, fmt.Errorf("failed to encode jurisdictions: %w", err)
	}
	return scanBandExemption(q.db.QueryRow(ctx, upsertBandExemption,
		record.BandNumber,
		record.BandName,
		jurisdictions,
		record.Active,
		record.ValidFrom,
		record.ValidUntil,
		record.UpdatedAt,
	))
}

func scanBandExemption(row rowScanner) (business.BandExemptionRecord, error) {
	var record business.BandExemptionRecord
	var jurisdictions []byte
	if err := row.Scan(
		&record.BandNumber,
		&record.BandName,
		&jurisdictions,
		&record.Active,
		&record.ValidFrom,
		&record.ValidUntil,
		&record.UpdatedAt,
	); err != nil {
		return record, err
	}
	if err := json.Unmarshal(jurisdictions, &record.Jurisdictions); err != nil {
		return record, fmt.Errorf("failed to decode jurisdictions: %w", err)
	}
	record.ValidFrom = record.ValidFrom.UTC()
	return record, nil
}

const treatyColumns = `treaty_number, jurisdiction, exempt_tax_types, percentage, active, valid_from, valid_until, updated_at`

const getTreatyExemption = `SELECT ` + treatyColumns + `
FROM treaty_exemptions WHERE treaty_number = $1 AND jurisdiction = $2`

func (q *Queries) GetTreatyExemption(ctx context.Context, treatyNumber, jurisdiction string) (business.TreatyExemptionRecord, error) {
	record, err := scanTreatyExemption(q.db.QueryRow(ctx, getTreatyExemption, treatyNumber, jurisdiction))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, taxerr.NotFound("treaty exemption", treatyNumber+"/"+jurisdiction)
	}
	return record, err
}

const upsertTreatyExemption = `INSERT INTO treaty_exemptions (` + treatyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (treaty_number, jurisdiction) DO UPDATE SET
	exempt_tax_types = EXCLUDED.exempt_tax_types,
	percentage = EXCLUDED.percentage,
	active = EXCLUDED.active,
	valid_from = EXCLUDED.valid_from,
	valid_until = EXCLUDED.valid_until,
	updated_at = EXCLUDED.updated_at
RETURNING ` + treatyColumns

func (q *Queries) UpsertTreatyExemption(ctx context.Context, record business.TreatyExemptionRecord) (business.TreatyExemptionRecord, error) {
	types, err := json.Marshal(record.ExemptTaxTypes)
	if err != nil {
		return record, fmt.Errorf("failed to encode exempt tax types: %w", err)
	}
	return scanTreatyExemption(q.db.QueryRow(ctx, upsertTreatyExemption,
		record.TreatyNumber,
		record.Jurisdiction,
		types,
		record.Percentage,
		record.Active,
		record.ValidFrom,
		record.ValidUntil,
		record.UpdatedAt,
	))
}

func scanTreatyExemption(row rowScanner) (business.TreatyExemptionRecord, error) {
	var record business.TreatyExemptionRecord
	var types []byte
	if err := row.Scan(
		&record.TreatyNumber,
		&record.Jurisdiction,
		&types,
		&record.Percentage,
		&record.Active,
		&record.ValidFrom,
		&record.ValidUntil,
		&record.UpdatedAt,
	); err != nil {
		return record, err
	}
	if err := json.Unmarshal(types, &record.ExemptTaxTypes); err != nil {
		return record, fmt.Errorf("failed to decode exempt tax types: %w", err)
	}
	record.ValidFrom = record.ValidFrom.UTC()
	return record, nil
}
