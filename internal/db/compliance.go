package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

const upsertComplianceRecord = `INSERT INTO compliance_records (entity_id, filing_compliant, payment_compliant,
	outstanding_returns, outstanding_balance, risk_level, risk_factors, last_assessment)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (entity_id) DO UPDATE SET
	filing_compliant = EXCLUDED.filing_compliant,
	payment_compliant = EXCLUDED.payment_compliant,
	outstanding_returns = EXCLUDED.outstanding_returns,
	outstanding_balance = EXCLUDED.outstanding_balance,
	risk_level = EXCLUDED.risk_level,
	risk_factors = EXCLUDED.risk_factors,
	last_assessment = EXCLUDED.last_assessment`

func (q *Queries) UpsertComplianceRecord(ctx context.Context, record business.ComplianceRecord) error {
	factors, err := json.Marshal(record.RiskFactors)
	if err != nil {
		return fmt.Errorf("failed to encode risk factors: %w", err)
	}
	_, err = q.db.Exec(ctx, upsertComplianceRecord,
		record.EntityID,
		record.FilingCompliant,
		record.PaymentCompliant,
		int64(record.OutstandingReturns),
		record.OutstandingBalance,
		string(record.RiskLevel),
		factors,
		record.LastAssessment,
	)
	return err
}

const getComplianceRecord = `SELECT entity_id, filing_compliant, payment_compliant, outstanding_returns,
	outstanding_balance, risk_level, risk_factors, last_assessment
FROM compliance_records WHERE entity_id = $1`

func (q *Queries) GetComplianceRecord(ctx context.Context, entityID string) (business.ComplianceRecord, error) {
	var record business.ComplianceRecord
	var outstanding int64
	var risk string
	var factors []byte
	err := q.db.QueryRow(ctx, getComplianceRecord, entityID).Scan(
		&record.EntityID,
		&record.FilingCompliant,
		&record.PaymentCompliant,
		&outstanding,
		&record.OutstandingBalance,
		&risk,
		&factors,
		&record.LastAssessment,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return record, taxerr.NotFound("compliance record", entityID)
	}
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(factors, &record.RiskFactors); err != nil {
		return record, fmt.Errorf("failed to decode risk factors: %w", err)
	}
	record.OutstandingReturns = uint32(outstanding)
	record.RiskLevel = business.RiskLevel(risk)
	record.LastAssessment = record.LastAssessment.UTC()
	return record, nil
}

const listEntityIDs = `SELECT entity_id FROM tax_calculations
UNION SELECT entity_id FROM tax_returns
UNION SELECT entity_id FROM remittances
ORDER BY entity_id`

func (q *Queries) ListEntityIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listEntityIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
