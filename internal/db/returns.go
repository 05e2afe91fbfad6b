package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

const returnColumns = `return_id, lineage_id, version, amends_return_id, entity_id, return_type, period,
	start_date, end_date, total_sales, taxable_sales, exempt_sales, indigenous_sales, collected_tax,
	total_tax_collected, input_tax_credits, net_tax_owing, calculation_count, indigenous_count,
	calculation_ids, status, audit_risk, due_date, confirmation_number, reviewed_by, approved_by,
	filed_at, created_at, updated_at`

const insertTaxReturn = `INSERT INTO tax_returns (` + returnColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26, $27, $28, $29)`

func (q *Queries) insertTaxReturn(ctx context.Context, ret business.TaxReturn) error {
	collected, err := json.Marshal(ret.CollectedTax)
	if err != nil {
		return fmt.Errorf("failed to encode collected tax: %w", err)
	}
	ids, err := json.Marshal(ret.CalculationIDs)
	if err != nil {
		return fmt.Errorf("failed to encode calculation ids: %w", err)
	}

	_, err = q.db.Exec(ctx, insertTaxReturn,
		ret.ReturnID,
		ret.LineageID,
		ret.Version,
		ret.AmendsReturnID,
		ret.EntityID,
		ret.ReturnType,
		ret.Period,
		ret.StartDate,
		ret.EndDate,
		ret.TotalSales,
		ret.TaxableSales,
		ret.ExemptSales,
		ret.IndigenousSales,
		collected,
		ret.TotalTaxCollected,
		ret.InputTaxCredits,
		ret.NetTaxOwing,
		ret.CalculationCount,
		ret.IndigenousCount,
		ids,
		string(ret.Status),
		string(ret.AuditRisk),
		ret.DueDate,
		ret.ConfirmationNumber,
		ret.ReviewedBy,
		ret.ApprovedBy,
		ret.FiledAt,
		ret.CreatedAt,
		ret.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	return err
}

// A conflicting row owned by another lineage is left untouched and not counted.
const claimCalculations = `INSERT INTO return_calculation_claims (calculation_id, lineage_id)
SELECT id::uuid, $2 FROM unnest($1::text[]) AS id
ON CONFLICT (calculation_id) DO UPDATE SET lineage_id = EXCLUDED.lineage_id
WHERE return_calculation_claims.lineage_id = EXCLUDED.lineage_id`

func (q *Queries) claimCalculations(ctx context.Context, lineageID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	tag, err := q.db.Exec(ctx, claimCalculations, strs, lineageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return taxerr.PeriodOverlap("%d of %d calculations are already claimed by another return",
			int64(len(ids))-tag.RowsAffected(), len(ids))
	}
	return nil
}

const overlappingReturn = `SELECT return_id, period FROM tax_returns
WHERE entity_id = $1 AND lineage_id <> $2 AND start_date < $4 AND $3 < end_date
LIMIT 1`

// checkPeriodFree fails with PeriodOverlap when another lineage already covers
// part of ret's dates.
func (q *Queries) checkPeriodFree(ctx context.Context, ret business.TaxReturn) error {
	var (
		id     uuid.UUID
		period string
	)
	err := q.db.QueryRow(ctx, overlappingReturn, ret.EntityID, ret.LineageID, ret.StartDate, ret.EndDate).Scan(&id, &period)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return taxerr.PeriodOverlap("period %s overlaps return %s (%s)", ret.Period, id, period)
}

const getTaxReturn = `SELECT ` + returnColumns + ` FROM tax_returns WHERE return_id = $1`

func (q *Queries) GetTaxReturn(ctx context.Context, id uuid.UUID) (business.TaxReturn, error) {
	ret, err := scanTaxReturn(q.db.QueryRow(ctx, getTaxReturn, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ret, taxerr.NotFound("tax return", id.String())
	}
	return ret, err
}

const listTaxReturnsByEntity = `SELECT ` + returnColumns + `
FROM tax_returns WHERE entity_id = $1 ORDER BY start_date, version`

func (q *Queries) ListTaxReturnsByEntity(ctx context.Context, entityID string) ([]business.TaxReturn, error) {
	rows, err := q.db.Query(ctx, listTaxReturnsByEntity, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []business.TaxReturn
	for rows.Next() {
		ret, err := scanTaxReturn(rows)
		if err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}

const updateTaxReturnStatus = `UPDATE tax_returns
SET status = $3, reviewed_by = $4, approved_by = $5, confirmation_number = $6, filed_at = $7, updated_at = $8
WHERE return_id = $1 AND status = $2`

// UpdateTaxReturnStatus writes the workflow fields of ret if its stored status is still expected.
func (q *Queries) UpdateTaxReturnStatus(ctx context.Context, ret business.TaxReturn, expected business.ReturnStatus) error {
	tag, err := q.db.Exec(ctx, updateTaxReturnStatus,
		ret.ReturnID,
		string(expected),
		string(ret.Status),
		ret.ReviewedBy,
		ret.ApprovedBy,
		ret.ConfirmationNumber,
		ret.FiledAt,
		ret.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := q.GetTaxReturn(ctx, ret.ReturnID); err != nil {
		return err
	}
	return ErrStaleStatus
}

func scanTaxReturn(row rowScanner) (business.TaxReturn, error) {
	var ret business.TaxReturn
	var collected, ids []byte
	var status, risk string
	if err := row.Scan(
		&ret.ReturnID,
		&ret.LineageID,
		&ret.Version,
		&ret.AmendsReturnID,
		&ret.EntityID,
		&ret.ReturnType,
		&ret.Period,
		&ret.StartDate,
		&ret.EndDate,
		&ret.TotalSales,
		&ret.TaxableSales,
		&ret.ExemptSales,
		&ret.IndigenousSales,
		&collected,
		&ret.TotalTaxCollected,
		&ret.InputTaxCredits,
		&ret.NetTaxOwing,
		&ret.CalculationCount,
		&ret.IndigenousCount,
		&ids,
		&status,
		&risk,
		&ret.DueDate,
		&ret.ConfirmationNumber,
		&ret.ReviewedBy,
		&ret.ApprovedBy,
		&ret.FiledAt,
		&ret.CreatedAt,
		&ret.UpdatedAt,
	); err != nil {
		return ret, err
	}
	if err := json.Unmarshal(collected, &ret.CollectedTax); err != nil {
		return ret, fmt.Errorf("failed to decode collected tax: %w", err)
	}
	if err := json.Unmarshal(ids, &ret.CalculationIDs); err != nil {
		return ret, fmt.Errorf("failed to decode calculation ids: %w", err)
	}
	ret.Status = business.ReturnStatus(status)
	ret.AuditRisk = business.RiskLevel(risk)
	ret.StartDate = ret.StartDate.UTC()
	ret.EndDate = ret.EndDate.UTC()
	ret.DueDate = ret.DueDate.UTC()
	ret.CreatedAt = ret.CreatedAt.UTC()
	ret.UpdatedAt = ret.UpdatedAt.UTC()
	if ret.FiledAt != nil {
		t := ret.FiledAt.UTC()
		ret.FiledAt = &t
	}
	return ret, nil
}
