package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

const remittanceColumns = `remittance_id, return_id, entity_id, amounts, total_amount, due_date, status, paid_at, created_at, updated_at`

const insertRemittance = `INSERT INTO remittances (` + remittanceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (q *Queries) insertRemittance(ctx context.Context, rem business.Remittance) error {
	amounts, err := json.Marshal(rem.Amounts)
	if err != nil {
		return fmt.Errorf("failed to encode remittance amounts: %w", err)
	}
	_, err = q.db.Exec(ctx, insertRemittance,
		rem.RemittanceID,
		rem.ReturnID,
		rem.EntityID,
		amounts,
		rem.TotalAmount,
		rem.DueDate,
		string(rem.Status),
		rem.PaidAt,
		rem.CreatedAt,
		rem.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	return err
}

const getRemittance = `SELECT ` + remittanceColumns + ` FROM remittances WHERE remittance_id = $1`

func (q *Queries) GetRemittance(ctx context.Context, id uuid.UUID) (business.Remittance, error) {
	rem, err := scanRemittance(q.db.QueryRow(ctx, getRemittance, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, taxerr.NotFound("remittance", id.String())
	}
	return rem, err
}

const listRemittancesByEntity = `SELECT ` + remittanceColumns + `
FROM remittances WHERE entity_id = $1 ORDER BY due_date, remittance_id`

func (q *Queries) ListRemittancesByEntity(ctx context.Context, entityID string) ([]business.Remittance, error) {
	rows, err := q.db.Query(ctx, listRemittancesByEntity, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []business.Remittance
	for rows.Next() {
		rem, err := scanRemittance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

const updateRemittanceStatus = `UPDATE remittances SET status = $3, paid_at = $4, updated_at = $5
WHERE remittance_id = $1 AND status = $2`

func (q *Queries) UpdateRemittanceStatus(ctx context.Context, rem business.Remittance, expected business.RemittanceStatus) error {
	tag, err := q.db.Exec(ctx, updateRemittanceStatus,
		rem.RemittanceID,
		string(expected),
		string(rem.Status),
		rem.PaidAt,
		rem.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := q.GetRemittance(ctx, rem.RemittanceID); err != nil {
		return err
	}
	return ErrStaleStatus
}

const markOverdueRemittances = `UPDATE remittances SET status = 'overdue', updated_at = $1
WHERE status = 'pending' AND due_date < $1`

func (q *Queries) MarkOverdueRemittances(ctx context.Context, asOf time.Time) (int, error) {
	tag, err := q.db.Exec(ctx, markOverdueRemittances, asOf)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanRemittance(row rowScanner) (business.Remittance, error) {
	var rem business.Remittance
	var amounts []byte
	var status string
	if err := row.Scan(
		&rem.RemittanceID,
		&rem.ReturnID,
		&rem.EntityID,
		&amounts,
		&rem.TotalAmount,
		&rem.DueDate,
		&status,
		&rem.PaidAt,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		return rem, err
	}
	if err := json.Unmarshal(amounts, &rem.Amounts); err != nil {
		return rem, fmt.Errorf("failed to decode remittance amounts: %w", err)
	}
	rem.Status = business.RemittanceStatus(status)
	rem.DueDate = rem.DueDate.UTC()
	rem.CreatedAt = rem.CreatedAt.UTC()
	rem.UpdatedAt = rem.UpdatedAt.UTC()
	return rem, nil
}
