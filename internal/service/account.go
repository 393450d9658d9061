package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/repository"
)

// PrincipalStore captures the persistence operations the account service
// needs, so tests can substitute fakes for the Postgres repository.
type PrincipalStore interface {
	CreatePrincipal(ctx context.Context, p *model.Principal) error
	GetPrincipalByNaturalKey(ctx context.Context, kind model.Kind, naturalKey string) (*model.Principal, error)
	GetPrincipalByID(ctx context.Context, kind model.Kind, id string) (*model.Principal, error)
	UpdatePrincipal(ctx context.Context, p *model.Principal) error
	ListFarmers(ctx context.Context) ([]*model.Principal, error)
}

// AccountService handles registration, login, and profile management for all
// three principal kinds.
type AccountService struct {
	store PrincipalStore
}

// NewAccountService creates a new AccountService.
func NewAccountService(store PrincipalStore) *AccountService {
	return &AccountService{store: store}
}

// RegisterInput defines input for registering a principal.
type RegisterInput struct {
	NaturalKey string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	Profile    map[string]any
}

// Register creates a principal in the kind's collection. PAN cards and
// employee IDs are uppercased so case variants collide on the unique index.
func (s *AccountService) Register(ctx context.Context, kind model.Kind, input RegisterInput) (*model.Principal, error) {
	if strings.TrimSpace(input.NaturalKey) == "" {
		return nil, missingField(kind.NaturalKeyField())
	}
	if input.Password == "" {
		return nil, missingField("password")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, missingField("first_name")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return nil, missingField("last_name")
	}

	naturalKey := normalizeNaturalKey(kind, input.NaturalKey)

	// Pre-check for a friendlier conflict path; the insert below remains the
	// authoritative check when two registrations race.
	if _, err := s.store.GetPrincipalByNaturalKey(ctx, kind, naturalKey); err == nil {
		return nil, ErrDuplicateNaturalKey
	} else if !errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := input.Profile
	if profile == nil {
		profile = map[string]any{}
	}

	now := time.Now().UTC()
	p := &model.Principal{
		ID:           ulid.Make().String(),
		Kind:         kind,
		NaturalKey:   naturalKey,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		Profile:      profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if kind == model.KindUser {
		p.Email = naturalKey
	}

	if err := s.store.CreatePrincipal(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNaturalKeyExists) {
			return nil, ErrDuplicateNaturalKey
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return p, nil
}

// Login verifies credentials and returns the principal. An unknown natural
// key and a wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, kind model.Kind, naturalKey, password string) (*model.Principal, error) {
	if strings.TrimSpace(naturalKey) == "" {
		return nil, missingField(kind.NaturalKeyField())
	}
	if password == "" {
		return nil, missingField("password")
	}

	p, err := s.store.GetPrincipalByNaturalKey(ctx, kind, normalizeNaturalKey(kind, naturalKey))
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	match, err := auth.VerifyPassword(password, p.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return p, nil
}

// VerifyPassword reports whether the plaintext matches the stored hash for
// the natural key. Returns false, not an error, when the principal is absent.
func (s *AccountService) VerifyPassword(ctx context.Context, kind model.Kind, naturalKey, password string) bool {
	p, err := s.store.GetPrincipalByNaturalKey(ctx, kind, normalizeNaturalKey(kind, naturalKey))
	if err != nil {
		return false
	}
	match, err := auth.VerifyPassword(password, p.PasswordHash)
	return err == nil && match
}

// Profile fetches a principal by ID within its kind's collection.
func (s *AccountService) Profile(ctx context.Context, kind model.Kind, id string) (*model.Principal, error) {
	p, err := s.store.GetPrincipalByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return p, nil
}

// Restricted patch keys: identity and credential fields are never mutable
// through the profile-update path, regardless of what the client sends.
var restrictedPatchKeys = []string{
	"id", "_id", "password", "password_hash", "user_type", "created_at", "updated_at",
}

// UpdateProfile merge-patches a principal's profile: only supplied fields
// change. The natural key, password, and identity fields are stripped from
// the patch before the store sees it.
func (s *AccountService) UpdateProfile(ctx context.Context, kind model.Kind, id string, patch map[string]any) (*model.Principal, error) {
	p, err := s.Profile(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	for _, key := range restrictedPatchKeys {
		delete(patch, key)
	}
	delete(patch, kind.NaturalKeyField())

	for key, value := range patch {
		switch key {
		case "first_name":
			if v, ok := value.(string); ok {
				p.FirstName = v
			}
		case "last_name":
			if v, ok := value.(string); ok {
				p.LastName = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				p.Phone = v
			}
		case "email":
			if v, ok := value.(string); ok {
				p.Email = v
			}
		default:
			if p.Profile == nil {
				p.Profile = map[string]any{}
			}
			p.Profile[key] = value
		}
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdatePrincipal(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return p, nil
}

// ListFarmers returns every farmer, for admin consumption. The caller must be
// an existing admin; the stored permissions list is informational metadata
// and is not consulted.
func (s *AccountService) ListFarmers(ctx context.Context, adminID string) ([]*model.Principal, error) {
	if _, err := s.store.GetPrincipalByID(ctx, model.KindAdmin, adminID); err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, ErrAdminRequired
		}
		return nil, fmt.Errorf("failed to verify admin: %w", err)
	}

	farmers, err := s.store.ListFarmers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return farmers, nil
}

// normalizeNaturalKey uppercases PAN cards and employee IDs so lookups and
// uniqueness are case-insensitive for those kinds.
func normalizeNaturalKey(kind model.Kind, key string) string {
	key = strings.TrimSpace(key)
	if kind == model.KindFarmer || kind == model.KindAdmin {
		return strings.ToUpper(key)
	}
	return key
}
