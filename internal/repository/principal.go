package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
)

// Common errors for principal repository operations. Absence is a valid
// outcome at this layer; callers decide whether it becomes a 404 or a 403.
var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrNaturalKeyExists  = errors.New("natural key already exists")
	ErrUnknownKind       = errors.New("unknown principal kind")
)

// principalTable maps a principal kind to its collection table.
func principalTable(kind model.Kind) (string, error) {
	switch kind {
	case model.KindUser:
		return "users", nil
	case model.KindFarmer:
		return "farmers", nil
	case model.KindAdmin:
		return "admins", nil
	default:
		return "", ErrUnknownKind
	}
}

// CreatePrincipal inserts a new principal into its kind's table. A unique
// violation on the natural key is reported as ErrNaturalKeyExists even when a
// pre-check passed; the insert is the authoritative conflict detection.
func (r *Repository) CreatePrincipal(ctx context.Context, p *model.Principal) error {
	table, err := principalTable(p.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, natural_key, password_hash, first_name, last_name, phone, email, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, table)

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.NaturalKey,
		p.PasswordHash,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.Email,
		p.Profile,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrNaturalKeyExists
		}
		return fmt.Errorf("failed to create principal: %w", err)
	}

	return nil
}

// GetPrincipalByNaturalKey retrieves a principal by its login identifier.
// The password hash is included; strip it before serializing.
func (r *Repository) GetPrincipalByNaturalKey(ctx context.Context, kind model.Kind, naturalKey string) (*model.Principal, error) {
	table, err := principalTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, natural_key, password_hash, first_name, last_name, phone, email, profile, created_at, updated_at
		FROM %s
		WHERE natural_key = $1
	`, table)

	return r.scanPrincipal(kind, r.pool.QueryRow(ctx, query, naturalKey))
}

// GetPrincipalByID retrieves a principal by its surrogate ID.
func (r *Repository) GetPrincipalByID(ctx context.Context, kind model.Kind, id string) (*model.Principal, error) {
	table, err := principalTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, natural_key, password_hash, first_name, last_name, phone, email, profile, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, table)

	return r.scanPrincipal(kind, r.pool.QueryRow(ctx, query, id))
}

// UpdatePrincipal writes a principal's mutable fields. Identity and credential
// columns (id, natural_key, password_hash) are never touched through this path.
func (r *Repository) UpdatePrincipal(ctx context.Context, p *model.Principal) error {
	table, err := principalTable(p.Kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET first_name = $2, last_name = $3, phone = $4, email = $5, profile = $6, updated_at = $7
		WHERE id = $1
	`, table)

	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.Email,
		p.Profile,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update principal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPrincipalNotFound
	}

	return nil
}

// ListFarmers retrieves all farmers, in insertion order.
func (r *Repository) ListFarmers(ctx context.Context) ([]*model.Principal, error) {
	query := `
		SELECT id, natural_key, password_hash, first_name, last_name, phone, email, profile, created_at, updated_at
		FROM farmers
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	defer rows.Close()

	var farmers []*model.Principal
	for rows.Next() {
		farmer, err := r.scanPrincipal(model.KindFarmer, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, farmer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating farmers: %w", err)
	}

	return farmers, nil
}

// scanPrincipal scans a single row into a Principal model.
func (r *Repository) scanPrincipal(kind model.Kind, row pgx.Row) (*model.Principal, error) {
	p := model.Principal{Kind: kind}
	err := row.Scan(
		&p.ID,
		&p.NaturalKey,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Email,
		&p.Profile,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to scan principal: %w", err)
	}
	return &p, nil
}
