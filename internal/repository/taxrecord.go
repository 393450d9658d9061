package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
)

// ErrRecordNotFound indicates a tax record does not exist.
var ErrRecordNotFound = errors.New("tax record not found")

// CreateTaxRecord inserts a new tax record.
func (r *Repository) CreateTaxRecord(ctx context.Context, record *model.TaxRecord) error {
	query := `
		INSERT INTO tax_records (id, owner_id, tax_year, income, tax_type, deductions, credits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.OwnerID,
		record.TaxYear,
		record.Income,
		record.TaxType,
		record.Deductions,
		record.Credits,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tax record: %w", err)
	}

	return nil
}

// GetTaxRecordByID retrieves a tax record by its ID.
func (r *Repository) GetTaxRecordByID(ctx context.Context, id string) (*model.TaxRecord, error) {
	query := `
		SELECT id, owner_id, tax_year, income, tax_type, deductions, credits, created_at, updated_at
		FROM tax_records
		WHERE id = $1
	`

	record, err := scanTaxRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get tax record: %w", err)
	}

	return record, nil
}

// ListTaxRecordsByOwner retrieves all tax records owned by a principal,
// in insertion order.
func (r *Repository) ListTaxRecordsByOwner(ctx context.Context, ownerID string) ([]*model.TaxRecord, error) {
	query := `
		SELECT id, owner_id, tax_year, income, tax_type, deductions, credits, created_at, updated_at
		FROM tax_records
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records: %w", err)
	}
	defer rows.Close()

	var records []*model.TaxRecord
	for rows.Next() {
		record, err := scanTaxRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax records: %w", err)
	}

	return records, nil
}

// UpdateTaxRecord writes a record's mutable fields. owner_id and created_at
// are never written through this path.
func (r *Repository) UpdateTaxRecord(ctx context.Context, record *model.TaxRecord) error {
	query := `
		UPDATE tax_records
		SET tax_year = $2, income = $3, tax_type = $4, deductions = $5, credits = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		record.ID,
		record.TaxYear,
		record.Income,
		record.TaxType,
		record.Deductions,
		record.Credits,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteTaxRecord removes a tax record.
func (r *Repository) DeleteTaxRecord(ctx context.Context, id string) error {
	query := `DELETE FROM tax_records WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tax record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// scanTaxRecord scans a single row into a TaxRecord model.
func scanTaxRecord(row pgx.Row) (*model.TaxRecord, error) {
	var record model.TaxRecord
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.TaxYear,
		&record.Income,
		&record.TaxType,
		&record.Deductions,
		&record.Credits,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
