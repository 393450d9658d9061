// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/T69Chichass/TaxerPay-Backend/internal/model"

// RegisterRequest represents the request body for registering any principal
// kind. The natural-key field and the profile extras that apply depend on the
// route the request arrives on.
type RegisterRequest struct {
	Email      string `json:"email,omitempty"`
	PanCard    string `json:"pan_card,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`

	Address map[string]any `json:"address,omitempty"`

	// General-user extras
	TaxID    string `json:"tax_id,omitempty"`
	UserType string `json:"user_type,omitempty"` // individual or business

	// Farmer extras
	LandDetails map[string]any `json:"land_details,omitempty"`
	BankDetails map[string]any `json:"bank_details,omitempty"`

	// Admin extras
	Department  string   `json:"department,omitempty"`
	Designation string   `json:"designation,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// NaturalKey returns the login identifier for the kind being registered.
func (r *RegisterRequest) NaturalKey(kind model.Kind) string {
	switch kind {
	case model.KindFarmer:
		return r.PanCard
	case model.KindAdmin:
		return r.EmployeeID
	default:
		return r.Email
	}
}

// Profile collects the kind-specific free-form attributes into the profile
// document persisted alongside the typed fields.
func (r *RegisterRequest) Profile(kind model.Kind) map[string]any {
	profile := map[string]any{}
	if r.Address != nil {
		profile["address"] = r.Address
	}

	switch kind {
	case model.KindUser:
		if r.TaxID != "" {
			profile["tax_id"] = r.TaxID
		}
		if r.UserType != "" {
			profile["account_type"] = r.UserType
		}
	case model.KindFarmer:
		if r.LandDetails != nil {
			profile["land_details"] = r.LandDetails
		}
		if r.BankDetails != nil {
			profile["bank_details"] = r.BankDetails
		}
	case model.KindAdmin:
		if r.Department != "" {
			profile["department"] = r.Department
		}
		if r.Designation != "" {
			profile["designation"] = r.Designation
		}
		if r.Permissions != nil {
			profile["permissions"] = r.Permissions
		}
	}

	return profile
}

// LoginRequest represents the request body for logging in any principal kind.
type LoginRequest struct {
	Email      string `json:"email,omitempty"`
	PanCard    string `json:"pan_card,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Password   string `json:"password"`
}

// NaturalKey returns the login identifier for the kind logging in.
func (r *LoginRequest) NaturalKey(kind model.Kind) string {
	switch kind {
	case model.KindFarmer:
		return r.PanCard
	case model.KindAdmin:
		return r.EmployeeID
	default:
		return r.Email
	}
}

// AuthResponse is the body returned by register and login.
type AuthResponse struct {
	Message string         `json:"message"`
	User    map[string]any `json:"user"`
	Token   string         `json:"token"`
}

// ProfileResponse wraps a principal's public view.
type ProfileResponse struct {
	Message string         `json:"message,omitempty"`
	User    map[string]any `json:"user"`
}

// FarmerListResponse is the admin-only farmers listing.
type FarmerListResponse struct {
	Farmers []map[string]any `json:"farmers"`
	Count   int              `json:"count"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
