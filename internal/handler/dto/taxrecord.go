package dto

import "github.com/T69Chichass/TaxerPay-Backend/internal/model"

// CreateTaxRecordRequest represents the request body for creating a tax
// record. Pointer fields distinguish absent from zero. Owner and timestamps
// are not representable: they are stamped server-side.
type CreateTaxRecordRequest struct {
	TaxYear    *int     `json:"tax_year"`
	Income     *float64 `json:"income"`
	TaxType    string   `json:"tax_type"`
	Deductions *float64 `json:"deductions,omitempty"`
	Credits    *float64 `json:"credits,omitempty"`
}

// UpdateTaxRecordRequest is the merge-patch body for a tax record. Fields the
// client may not change (user_id, id, created_at) simply do not exist here,
// so sending them has no effect.
type UpdateTaxRecordRequest struct {
	TaxYear    *int     `json:"tax_year,omitempty"`
	Income     *float64 `json:"income,omitempty"`
	TaxType    *string  `json:"tax_type,omitempty"`
	Deductions *float64 `json:"deductions,omitempty"`
	Credits    *float64 `json:"credits,omitempty"`
}

// TaxRecordResponse wraps a single record.
type TaxRecordResponse struct {
	Message string           `json:"message,omitempty"`
	Record  *model.TaxRecord `json:"record"`
}

// TaxRecordListResponse wraps a principal's records.
type TaxRecordListResponse struct {
	Records []*model.TaxRecord `json:"records"`
	Count   int                `json:"count"`
}

// CalculateTaxRequest represents the request body for a tax calculation.
type CalculateTaxRequest struct {
	Income  *float64 `json:"income"`
	TaxType string   `json:"tax_type,omitempty"`
}

// CalculateTaxResponse is the calculation result.
type CalculateTaxResponse struct {
	Income        float64 `json:"income"`
	TaxType       string  `json:"tax_type"`
	CalculatedTax float64 `json:"calculated_tax"`
	EffectiveRate float64 `json:"effective_rate"`
}
