package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/handler/dto"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/service"
	"github.com/T69Chichass/TaxerPay-Backend/internal/tax"
)

// TaxHandler serves the tax-record CRUD routes and the calculator. All
// record routes operate on the authenticated subject's own records only.
type TaxHandler struct {
	records *service.TaxRecordService
	logger  *slog.Logger
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(records *service.TaxRecordService, logger *slog.Logger) *TaxHandler {
	return &TaxHandler{records: records, logger: logger}
}

// Create handles POST /records.
func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var req dto.CreateTaxRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	record, err := h.records.Create(r.Context(), claims.SubjectID, service.CreateRecordInput{
		TaxYear:    req.TaxYear,
		Income:     req.Income,
		TaxType:    req.TaxType,
		Deductions: req.Deductions,
		Credits:    req.Credits,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("tax_record_created",
		"record_id", record.ID,
		"owner_id", record.OwnerID,
		"tax_year", record.TaxYear,
	)

	writeJSON(w, http.StatusCreated, dto.TaxRecordResponse{
		Message: "Tax record created successfully",
		Record:  record,
	})
}

// List handles GET /records.
func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	records, err := h.records.List(r.Context(), claims.SubjectID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if records == nil {
		records = []*model.TaxRecord{}
	}

	writeJSON(w, http.StatusOK, dto.TaxRecordListResponse{
		Records: records,
		Count:   len(records),
	})
}

// Get handles GET /records/{id}.
func (h *TaxHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	record, err := h.records.Get(r.Context(), claims.SubjectID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxRecordResponse{Record: record})
}

// Update handles PUT /records/{id} with merge-patch semantics.
func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var req dto.UpdateTaxRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	record, err := h.records.Update(r.Context(), claims.SubjectID, chi.URLParam(r, "id"), service.UpdateRecordInput{
		TaxYear:    req.TaxYear,
		Income:     req.Income,
		TaxType:    req.TaxType,
		Deductions: req.Deductions,
		Credits:    req.Credits,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaxRecordResponse{
		Message: "Tax record updated successfully",
		Record:  record,
	})
}

// Delete handles DELETE /records/{id}.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.records.Delete(r.Context(), claims.SubjectID, id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("tax_record_deleted", "record_id", id, "owner_id", claims.SubjectID)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Tax record deleted successfully",
	})
}

// Calculate handles POST /calculate. The calculation is stateless; nothing is
// persisted. An empty tax_type means federal.
func (h *TaxHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Income == nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "income is required")
		return
	}

	taxType := req.TaxType
	if taxType == "" {
		taxType = tax.TypeFederal
	}

	result, err := tax.Calculate(*req.Income, taxType)
	if err != nil {
		if errors.Is(err, tax.ErrNegativeIncome) {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CalculateTaxResponse{
		Income:        *req.Income,
		TaxType:       taxType,
		CalculatedTax: result.Tax,
		EffectiveRate: result.EffectiveRate,
	})
}
