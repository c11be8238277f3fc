package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/domain/cost"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/services"
)

// CostHandler ingests billing feed entries
type CostHandler struct {
	repo     cost.Repository
	hub      *notify.Hub
	validate *validator.Validate
	logger   *logger.Logger
}

// NewCostHandler creates a new cost handler
func NewCostHandler(repo cost.Repository, hub *notify.Hub, log *logger.Logger) *CostHandler {
	return &CostHandler{
		repo:     repo,
		hub:      hub,
		validate: validator.New(),
		logger:   log,
	}
}

// IngestRequest is one billing feed record. Amounts arrive as decimal
// strings, the way billing exports emit them.
type IngestRequest struct {
	Provider string `json:"provider"`
	Service  string `json:"service"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

// Ingest records a cost entry for the caller's tenant and broadcasts a
// cost_update to live subscribers
func (h *CostHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	var req IngestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, errors.ValidationError("invalid cost entry", err.Error()))
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if req.Currency == "" {
		req.Currency = "USD"
	}

	entry := &cost.Entry{
		ID:       uuid.New().String(),
		TenantID: claims.TenantID,
		Provider: req.Provider,
		Service:  req.Service,
		Date:     date,
		Amount:   services.ParseAmount(h.logger, req.Amount),
		Currency: req.Currency,
	}

	if err := h.repo.CreateEntry(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	h.hub.PublishCostUpdate(claims.TenantID, map[string]interface{}{
		"date":   req.Date,
		"amount": entry.Amount,
	})

	writeJSON(w, http.StatusCreated, entry)
}
