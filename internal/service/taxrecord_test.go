package service

import (
	"context"
	"errors"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func validCreateRecordInput() CreateRecordInput {
	return CreateRecordInput{
		TaxYear: intPtr(2022),
		Income:  floatPtr(50000),
		TaxType: "federal",
	}
}

func TestCreateRecordValidation(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())

	tests := []struct {
		name  string
		input CreateRecordInput
	}{
		{"missing_tax_year", CreateRecordInput{Income: floatPtr(100), TaxType: "federal"}},
		{"missing_income", CreateRecordInput{TaxYear: intPtr(2022), TaxType: "federal"}},
		{"missing_tax_type", CreateRecordInput{TaxYear: intPtr(2022), Income: floatPtr(100)}},
		{"negative_income", CreateRecordInput{TaxYear: intPtr(2022), Income: floatPtr(-1), TaxType: "federal"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", test.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateRecordStampsOwner(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())

	record, err := svc.Create(context.Background(), "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record.OwnerID != "owner-1" {
		t.Fatalf("expected owner-1, got %q", record.OwnerID)
	}
	if record.ID == "" {
		t.Fatal("expected generated ID")
	}
	if record.CreatedAt.IsZero() || !record.CreatedAt.Equal(record.UpdatedAt) {
		t.Fatal("timestamps not stamped at creation")
	}
}

func TestListReturnsOnlyOwnRecords(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "owner-1", validCreateRecordInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "owner-2", validCreateRecordInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	records, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].OwnerID != "owner-1" {
		t.Fatalf("foreign record leaked: %q", records[0].OwnerID)
	}
}

func TestGetOwnership(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(ctx, "owner-1", record.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	// An existing record owned by someone else is forbidden, not missing.
	if _, err := svc.Get(ctx, "owner-2", record.ID); !errors.Is(err, ErrNotRecordOwner) {
		t.Fatalf("expected ErrNotRecordOwner, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner-1", "no-such-record"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdateRecordMergePatch(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, "owner-1", record.ID, UpdateRecordInput{
		Income:     floatPtr(60000),
		Deductions: floatPtr(2500),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Income != 60000 {
		t.Fatalf("income not patched: %v", updated.Income)
	}
	if updated.TaxYear != 2022 || updated.TaxType != "federal" {
		t.Fatal("unpatched fields changed")
	}
	if updated.Deductions == nil || *updated.Deductions != 2500 {
		t.Fatal("deductions not patched")
	}
	if updated.OwnerID != "owner-1" || !updated.CreatedAt.Equal(record.CreatedAt) {
		t.Fatal("immutable fields changed on update")
	}
	if !updated.UpdatedAt.After(record.UpdatedAt) {
		t.Fatal("updated_at not touched")
	}
}

func TestUpdateRecordRejectsNegativeIncome(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(ctx, "owner-1", record.ID, UpdateRecordInput{Income: floatPtr(-5)})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := svc.Get(ctx, "owner-1", record.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Income != 50000 {
		t.Fatalf("rejected update mutated the record: %v", got.Income)
	}
}

func TestUpdateRecordForeignOwner(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(ctx, "owner-2", record.ID, UpdateRecordInput{TaxType: stringPtr("state")})
	if !errors.Is(err, ErrNotRecordOwner) {
		t.Fatalf("expected ErrNotRecordOwner, got %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	svc := NewTaxRecordService(newFakeTaxRecordStore())
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", validCreateRecordInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, "owner-2", record.ID); !errors.Is(err, ErrNotRecordOwner) {
		t.Fatalf("expected ErrNotRecordOwner, got %v", err)
	}
	if err := svc.Delete(ctx, "owner-1", record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// Hard delete: the second attempt finds nothing.
	if err := svc.Delete(ctx, "owner-1", record.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}
