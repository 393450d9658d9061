// Package model defines domain entities for the application.
package model

import "time"

// Kind identifies which principal collection an account belongs to.
// The three collections are structurally identical but logically distinct:
// a farmer PAN and a user email never collide because they never share a table.
type Kind string

const (
	KindUser   Kind = "user"
	KindFarmer Kind = "farmer"
	KindAdmin  Kind = "admin"
)

// IsValid checks if the kind is one of the known collections.
func (k Kind) IsValid() bool {
	return k == KindUser || k == KindFarmer || k == KindAdmin
}

// NaturalKeyField returns the JSON/request field name the kind logs in with.
func (k Kind) NaturalKeyField() string {
	switch k {
	case KindFarmer:
		return "pan_card"
	case KindAdmin:
		return "employee_id"
	default:
		return "email"
	}
}

// Principal represents an authenticated account: a general user, a farmer,
// or an admin, depending on Kind.
type Principal struct {
	ID           string         `json:"id"`
	Kind         Kind           `json:"user_type"`
	NaturalKey   string         `json:"-"`
	PasswordHash string         `json:"-"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Phone        string         `json:"phone,omitempty"`
	Email        string         `json:"email,omitempty"`
	Profile      map[string]any `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PublicView renders the principal for API responses. The natural key appears
// under its kind-specific name and the password hash is never included.
func (p *Principal) PublicView() map[string]any {
	view := map[string]any{
		"id":         p.ID,
		"user_type":  string(p.Kind),
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
	if p.Phone != "" {
		view["phone"] = p.Phone
	}
	if p.Email != "" {
		view["email"] = p.Email
	}
	view[p.Kind.NaturalKeyField()] = p.NaturalKey
	for key, value := range p.Profile {
		if _, taken := view[key]; !taken {
			view[key] = value
		}
	}
	return view
}
