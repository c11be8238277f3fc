package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/domain/remediation"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

// RemediationHandler serves remediation proposal and approval endpoints
type RemediationHandler struct {
	service  remediation.Service
	validate *validator.Validate
}

// NewRemediationHandler creates a new remediation handler
func NewRemediationHandler(service remediation.Service) *RemediationHandler {
	return &RemediationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// ProposeRequest is the payload for proposing a remediation action
type ProposeRequest struct {
	Type             string  `json:"type" validate:"required"`
	ResourceID       string  `json:"resource_id" validate:"required"`
	Description      string  `json:"description"`
	EstimatedSavings float64 `json:"estimated_savings" validate:"gte=0"`
	Risk             string  `json:"risk" validate:"omitempty,oneof=low medium high"`
}

// Propose creates a remediation action and runs auto-approval
func (h *RemediationHandler) Propose(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	var req ProposeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, errors.ValidationError("invalid proposal", err.Error()))
		return
	}
	if req.Risk == "" {
		req.Risk = remediation.RiskLow
	}

	action := &remediation.Action{
		TenantID:         claims.TenantID,
		Type:             req.Type,
		ResourceID:       req.ResourceID,
		Description:      req.Description,
		EstimatedSavings: req.EstimatedSavings,
		Currency:         "USD",
		Risk:             req.Risk,
		RequestedBy:      claims.UserID,
	}

	created, err := h.service.Propose(r.Context(), action)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Approve manually approves a pending action
func (h *RemediationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	id := chi.URLParam(r, "id")
	approved, err := h.service.Approve(r.Context(), claims.TenantID, id, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, approved)
}

// List returns the caller tenant's remediation actions
func (h *RemediationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	actions, err := h.service.List(r.Context(), claims.TenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, actions)
}
