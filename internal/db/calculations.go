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

const calculationColumns = `calculation_id, entity_id, buyer_id, jurisdiction, subtotal, taxable_amount,
	exempt_amount, taxes, total_tax, total_amount, exemption, line_items, supersedes_id, tax_point_at, created_at`

const createTaxCalculation = `INSERT INTO tax_calculations (` + calculationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (calculation_id) DO NOTHING`

// CreateTaxCalculation inserts a calculation. Re-inserting the same ID is a no-op.
func (q *Queries) CreateTaxCalculation(ctx context.Context, calc business.TaxCalculation) error {
	taxes, err := json.Marshal(calc.Taxes)
	if err != nil {
		return fmt.Errorf("failed to encode taxes: %w", err)
	}
	exemption, err := json.Marshal(calc.Exemption)
	if err != nil {
		return fmt.Errorf("failed to encode exemption: %w", err)
	}
	items, err := json.Marshal(calc.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	_, err = q.db.Exec(ctx, createTaxCalculation,
		calc.CalculationID,
		calc.EntityID,
		calc.BuyerID,
		calc.Jurisdiction,
		calc.Subtotal,
		calc.TaxableAmount,
		calc.ExemptAmount,
		taxes,
		calc.TotalTax,
		calc.TotalAmount,
		exemption,
		items,
		calc.SupersedesID,
		calc.TaxPointAt,
		calc.CreatedAt,
	)
	return err
}

const getTaxCalculation = `SELECT ` + calculationColumns + ` FROM tax_calculations WHERE calculation_id = $1`

func (q *Queries) GetTaxCalculation(ctx context.Context, id uuid.UUID) (business.TaxCalculation, error) {
	calc, err := scanTaxCalculation(q.db.QueryRow(ctx, getTaxCalculation, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return calc, taxerr.NotFound("tax calculation", id.String())
	}
	return calc, err
}

const listTaxCalculationsForPeriod = `SELECT ` + calculationColumns + `
FROM tax_calculations
WHERE entity_id = $1 AND tax_point_at >= $2 AND tax_point_at < $3
ORDER BY tax_point_at, calculation_id`

// ListTaxCalculationsForPeriod returns calculations whose tax point falls in [start, end).
func (q *Queries) ListTaxCalculationsForPeriod(ctx context.Context, entityID string, start, end time.Time) ([]business.TaxCalculation, error) {
	rows, err := q.db.Query(ctx, listTaxCalculationsForPeriod, entityID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []business.TaxCalculation
	for rows.Next() {
		calc, err := scanTaxCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	return calcs, rows.Err()
}

func scanTaxCalculation(row rowScanner) (business.TaxCalculation, error) {
	var calc business.TaxCalculation
	var taxes, exemption, items []byte
	if err := row.Scan(
		&calc.CalculationID,
		&calc.EntityID,
		&calc.BuyerID,
		&calc.Jurisdiction,
		&calc.Subtotal,
		&calc.TaxableAmount,
		&calc.ExemptAmount,
		&taxes,
		&calc.TotalTax,
		&calc.TotalAmount,
		&exemption,
		&items,
		&calc.SupersedesID,
		&calc.TaxPointAt,
		&calc.CreatedAt,
	); err != nil {
		return calc, err
	}
	if err := json.Unmarshal(taxes, &calc.Taxes); err != nil {
		return calc, fmt.Errorf("failed to decode taxes: %w", err)
	}
	if err := json.Unmarshal(exemption, &calc.Exemption); err != nil {
		return calc, fmt.Errorf("failed to decode exemption: %w", err)
	}
	if err := json.Unmarshal(items, &calc.LineItems); err != nil {
		return calc, fmt.Errorf("failed to decode line items: %w", err)
	}
	calc.TaxPointAt = calc.TaxPointAt.UTC()
	calc.CreatedAt = calc.CreatedAt.UTC()
	return calc, nil
}
