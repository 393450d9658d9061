package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/repository"
)

// TaxRecordStore captures the persistence operations the tax-record service
// needs. The store is authorization-agnostic; ownership is enforced here.
type TaxRecordStore interface {
	CreateTaxRecord(ctx context.Context, record *model.TaxRecord) error
	GetTaxRecordByID(ctx context.Context, id string) (*model.TaxRecord, error)
	ListTaxRecordsByOwner(ctx context.Context, ownerID string) ([]*model.TaxRecord, error)
	UpdateTaxRecord(ctx context.Context, record *model.TaxRecord) error
	DeleteTaxRecord(ctx context.Context, id string) error
}

// TaxRecordService handles tax-record CRUD with per-owner access control.
type TaxRecordService struct {
	store TaxRecordStore
}

// NewTaxRecordService creates a new TaxRecordService.
func NewTaxRecordService(store TaxRecordStore) *TaxRecordService {
	return &TaxRecordService{store: store}
}

// CreateRecordInput defines input for creating a tax record. Pointer fields
// distinguish absent from zero.
type CreateRecordInput struct {
	TaxYear    *int
	Income     *float64
	TaxType    string
	Deductions *float64
	Credits    *float64
}

// Create stamps the authenticated owner and timestamps and persists the
// record. The owner is never taken from the request payload.
func (s *TaxRecordService) Create(ctx context.Context, ownerID string, input CreateRecordInput) (*model.TaxRecord, error) {
	if input.TaxYear == nil {
		return nil, missingField("tax_year")
	}
	if input.Income == nil {
		return nil, missingField("income")
	}
	if input.TaxType == "" {
		return nil, missingField("tax_type")
	}
	if *input.Income < 0 {
		return nil, &ValidationError{Field: "income"}
	}

	now := time.Now().UTC()
	record := &model.TaxRecord{
		ID:         ulid.Make().String(),
		OwnerID:    ownerID,
		TaxYear:    *input.TaxYear,
		Income:     *input.Income,
		TaxType:    input.TaxType,
		Deductions: input.Deductions,
		Credits:    input.Credits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateTaxRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create tax record: %w", err)
	}

	return record, nil
}

// List returns every record owned by the subject.
func (s *TaxRecordService) List(ctx context.Context, ownerID string) ([]*model.TaxRecord, error) {
	records, err := s.store.ListTaxRecordsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records: %w", err)
	}
	return records, nil
}

// Get returns a record if it exists and belongs to the subject. Existence is
// checked first, so a foreign record is a forbidden outcome, not a missing one.
func (s *TaxRecordService) Get(ctx context.Context, ownerID, id string) (*model.TaxRecord, error) {
	return s.getOwned(ctx, ownerID, id)
}

// UpdateRecordInput defines the merge-patch for a record. Only non-nil fields
// change; owner, id, and created_at are not representable here at all.
type UpdateRecordInput struct {
	TaxYear    *int
	Income     *float64
	TaxType    *string
	Deductions *float64
	Credits    *float64
}

// Update merge-patches an owned record and touches updated_at.
func (s *TaxRecordService) Update(ctx context.Context, ownerID, id string, input UpdateRecordInput) (*model.TaxRecord, error) {
	record, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.TaxYear != nil {
		record.TaxYear = *input.TaxYear
	}
	if input.Income != nil {
		if *input.Income < 0 {
			return nil, &ValidationError{Field: "income"}
		}
		record.Income = *input.Income
	}
	if input.TaxType != nil {
		record.TaxType = *input.TaxType
	}
	if input.Deductions != nil {
		record.Deductions = input.Deductions
	}
	if input.Credits != nil {
		record.Credits = input.Credits
	}

	record.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateTaxRecord(ctx, record); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update tax record: %w", err)
	}

	return record, nil
}

// Delete removes an owned record. Deleting twice yields not-found the second time.
func (s *TaxRecordService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.store.DeleteTaxRecord(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete tax record: %w", err)
	}

	return nil
}

func (s *TaxRecordService) getOwned(ctx context.Context, ownerID, id string) (*model.TaxRecord, error) {
	record, err := s.store.GetTaxRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch tax record: %w", err)
	}
	if record.OwnerID != ownerID {
		return nil, ErrNotRecordOwner
	}
	return record, nil
}
