package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudspend/internal/services"
)

// ForecastHandler serves forecast read endpoints
type ForecastHandler struct {
	service *services.ForecastService
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(service *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Latest returns the most recent forecast for the caller's tenant
func (h *ForecastHandler) Latest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	f, err := h.service.Latest(r.Context(), claims.TenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, f)
}
