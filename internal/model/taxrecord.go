package model

import "time"

// TaxRecord represents a single filed tax entry owned by one principal.
// OwnerID is stamped from the authenticated subject at creation and is
// immutable afterwards.
type TaxRecord struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"user_id"`
	TaxYear    int       `json:"tax_year"`
	Income     float64   `json:"income"`
	TaxType    string    `json:"tax_type"`
	Deductions *float64  `json:"deductions,omitempty"`
	Credits    *float64  `json:"credits,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
