package service

import (
	"context"

	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/repository"
)

// fakePrincipalStore is an in-memory PrincipalStore keyed the same way the
// Postgres repository is: one table per kind, unique natural key per table.
type fakePrincipalStore struct {
	principals map[model.Kind]map[string]*model.Principal // kind -> id -> principal
}

func newFakePrincipalStore() *fakePrincipalStore {
	return &fakePrincipalStore{
		principals: map[model.Kind]map[string]*model.Principal{
			model.KindUser:   {},
			model.KindFarmer: {},
			model.KindAdmin:  {},
		},
	}
}

func (f *fakePrincipalStore) CreatePrincipal(ctx context.Context, p *model.Principal) error {
	table := f.principals[p.Kind]
	for _, existing := range table {
		if existing.NaturalKey == p.NaturalKey {
			return repository.ErrNaturalKeyExists
		}
	}
	clone := *p
	table[p.ID] = &clone
	return nil
}

func (f *fakePrincipalStore) GetPrincipalByNaturalKey(ctx context.Context, kind model.Kind, naturalKey string) (*model.Principal, error) {
	for _, p := range f.principals[kind] {
		if p.NaturalKey == naturalKey {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrPrincipalNotFound
}

func (f *fakePrincipalStore) GetPrincipalByID(ctx context.Context, kind model.Kind, id string) (*model.Principal, error) {
	p, ok := f.principals[kind][id]
	if !ok {
		return nil, repository.ErrPrincipalNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePrincipalStore) UpdatePrincipal(ctx context.Context, p *model.Principal) error {
	if _, ok := f.principals[p.Kind][p.ID]; !ok {
		return repository.ErrPrincipalNotFound
	}
	clone := *p
	f.principals[p.Kind][p.ID] = &clone
	return nil
}

func (f *fakePrincipalStore) ListFarmers(ctx context.Context) ([]*model.Principal, error) {
	farmers := make([]*model.Principal, 0, len(f.principals[model.KindFarmer]))
	for _, p := range f.principals[model.KindFarmer] {
		clone := *p
		farmers = append(farmers, &clone)
	}
	return farmers, nil
}

// fakeTaxRecordStore is an in-memory TaxRecordStore.
type fakeTaxRecordStore struct {
	records map[string]*model.TaxRecord
}

func newFakeTaxRecordStore() *fakeTaxRecordStore {
	return &fakeTaxRecordStore{records: map[string]*model.TaxRecord{}}
}

func (f *fakeTaxRecordStore) CreateTaxRecord(ctx context.Context, record *model.TaxRecord) error {
	clone := *record
	f.records[record.ID] = &clone
	return nil
}

func (f *fakeTaxRecordStore) GetTaxRecordByID(ctx context.Context, id string) (*model.TaxRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (f *fakeTaxRecordStore) ListTaxRecordsByOwner(ctx context.Context, ownerID string) ([]*model.TaxRecord, error) {
	var records []*model.TaxRecord
	for _, record := range f.records {
		if record.OwnerID == ownerID {
			clone := *record
			records = append(records, &clone)
		}
	}
	return records, nil
}

func (f *fakeTaxRecordStore) UpdateTaxRecord(ctx context.Context, record *model.TaxRecord) error {
	existing, ok := f.records[record.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	clone := *record
	// The repository never writes these columns on update.
	clone.OwnerID = existing.OwnerID
	clone.CreatedAt = existing.CreatedAt
	f.records[record.ID] = &clone
	return nil
}

func (f *fakeTaxRecordStore) DeleteTaxRecord(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}
