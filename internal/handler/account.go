package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/handler/dto"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
	"github.com/T69Chichass/TaxerPay-Backend/internal/service"
)

// AccountHandler serves register/login/profile for one principal kind. The
// same handler type is mounted three times: /api/auth (users), /api/farmer,
// and /api/admin.
type AccountHandler struct {
	kind     model.Kind
	accounts *service.AccountService
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

// NewAccountHandler creates a handler for one principal kind.
func NewAccountHandler(kind model.Kind, accounts *service.AccountService, tokens *auth.TokenManager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		kind:     kind,
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register handles POST /register for the handler's kind.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.RegisterInput{
		NaturalKey: req.NaturalKey(h.kind),
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Profile:    req.Profile(h.kind),
	}

	principal, err := h.accounts.Register(r.Context(), h.kind, input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	token, err := h.tokens.Issue(principal)
	if err != nil {
		h.logger.Error("token issuance failed", "error", err, "kind", h.kind)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	h.logger.Info("account_registered",
		"kind", string(h.kind),
		"principal_id", principal.ID,
	)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Message: registeredMessage(h.kind),
		User:    principal.PublicView(),
		Token:   token,
	})
}

// Login handles POST /login for the handler's kind.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	principal, err := h.accounts.Login(r.Context(), h.kind, req.NaturalKey(h.kind), req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	token, err := h.tokens.Issue(principal)
	if err != nil {
		h.logger.Error("token issuance failed", "error", err, "kind", h.kind)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    principal.PublicView(),
		Token:   token,
	})
}

// GetProfile handles GET /profile. The subject is resolved only within the
// handler's own collection, so a token of another kind yields a 404.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	principal, err := h.accounts.Profile(r.Context(), h.kind, claims.SubjectID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{User: principal.PublicView()})
}

// UpdateProfile handles PUT /profile with merge-patch semantics: only the
// supplied fields change. Credential and identity fields in the payload are
// discarded before the store is involved.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	principal, err := h.accounts.UpdateProfile(r.Context(), h.kind, claims.SubjectID, patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("profile_updated",
		"kind", string(h.kind),
		"principal_id", principal.ID,
	)

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		Message: "Profile updated successfully",
		User:    principal.PublicView(),
	})
}

// ListFarmers handles GET /farmers. Mounted only on the admin routes; any
// authenticated subject that is not an existing admin is refused.
func (h *AccountHandler) ListFarmers(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization token required")
		return
	}

	farmers, err := h.accounts.ListFarmers(r.Context(), claims.SubjectID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	views := make([]map[string]any, len(farmers))
	for i, farmer := range farmers {
		views[i] = farmer.PublicView()
	}

	writeJSON(w, http.StatusOK, dto.FarmerListResponse{
		Farmers: views,
		Count:   len(views),
	})
}

func registeredMessage(kind model.Kind) string {
	switch kind {
	case model.KindFarmer:
		return "Farmer registered successfully"
	case model.KindAdmin:
		return "Admin registered successfully"
	default:
		return "User registered successfully"
	}
}
