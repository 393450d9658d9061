// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/T69Chichass/TaxerPay-Backend/internal/handler/dto"
	"github.com/T69Chichass/TaxerPay-Backend/internal/service"
)

// Handler serves the informational endpoints and the router fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Info describes the API surface.
// GET /api
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "TaxerPay API",
		"version":     "1.0.0",
		"description": "Farmer Land Tax Management System",
		"endpoints": map[string]any{
			"general_auth": map[string]string{
				"register":       "POST /api/auth/register",
				"login":          "POST /api/auth/login",
				"profile":        "GET /api/auth/profile",
				"update_profile": "PUT /api/auth/profile",
			},
			"farmer_auth": map[string]string{
				"register":       "POST /api/farmer/register",
				"login":          "POST /api/farmer/login",
				"profile":        "GET /api/farmer/profile",
				"update_profile": "PUT /api/farmer/profile",
			},
			"admin_auth": map[string]string{
				"register":        "POST /api/admin/register",
				"login":           "POST /api/admin/login",
				"profile":         "GET /api/admin/profile",
				"update_profile":  "PUT /api/admin/profile",
				"get_all_farmers": "GET /api/admin/farmers",
			},
			"tax": map[string]string{
				"create_record": "POST /api/tax/records",
				"get_records":   "GET /api/tax/records",
				"get_record":    "GET /api/tax/records/{id}",
				"update_record": "PUT /api/tax/records/{id}",
				"delete_record": "DELETE /api/tax/records/{id}",
				"calculate_tax": "POST /api/tax/calculate",
			},
		},
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps service errors to HTTP responses. Unexpected errors
// are logged with detail and answered with a generic message.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, service.ErrDuplicateNaturalKey):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrPrincipalNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Account not found")
	case errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Tax record not found")
	case errors.Is(err, service.ErrAdminRequired):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
	case errors.Is(err, service.ErrNotRecordOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Unauthorized access")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
