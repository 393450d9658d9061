// Package testutil provides helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 729729

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetTables empties every application table. The schema itself is created
// by the repository at construction, so tests only need a clean slate, not a
// migration replay.
func ResetTables(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range []string{"tax_records", "users", "farmers", "admins"} {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestPrincipal creates a principal of the given kind with sensible
// defaults. The password hash is a placeholder, not a real argon2 digest.
func NewTestPrincipal(t testing.TB, kind model.Kind, naturalKey string) *model.Principal {
	t.Helper()
	now := time.Now().UTC()
	return &model.Principal{
		ID:           UniqueID("principal"),
		Kind:         kind,
		NaturalKey:   naturalKey,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		FirstName:    "Test",
		LastName:     "Account",
		Phone:        "9999999999",
		Email:        "test@example.com",
		Profile:      map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestTaxRecord creates a tax record owned by the given principal.
func NewTestTaxRecord(t testing.TB, ownerID string) *model.TaxRecord {
	t.Helper()
	now := time.Now().UTC()
	return &model.TaxRecord{
		ID:        UniqueID("record"),
		OwnerID:   ownerID,
		TaxYear:   2022,
		Income:    50000,
		TaxType:   "federal",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
