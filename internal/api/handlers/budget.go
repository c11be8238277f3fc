package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/domain/budget"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudspend/internal/services"
)

// BudgetHandler serves budget endpoints
type BudgetHandler struct {
	service  *services.BudgetService
	validate *validator.Validate
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(service *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreateBudgetRequest is the payload for creating a budget
type CreateBudgetRequest struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Period string  `json:"period" validate:"omitempty,oneof=monthly quarterly annual"`
}

// Create creates a budget for the caller's tenant
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	var req CreateBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, errors.ValidationError("invalid budget", err.Error()))
		return
	}
	if req.Period == "" {
		req.Period = budget.PeriodMonthly
	}

	b := &budget.Budget{
		TenantID: claims.TenantID,
		Name:     req.Name,
		Amount:   req.Amount,
		Period:   req.Period,
	}
	if err := h.service.Create(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// List returns the caller tenant's budgets
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	budgets, err := h.service.ListByTenant(r.Context(), claims.TenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budgets)
}
