package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudspend/internal/services"
)

// AnomalyHandler serves anomaly read endpoints
type AnomalyHandler struct {
	service *services.AnomalyService
}

// NewAnomalyHandler creates a new anomaly handler
func NewAnomalyHandler(service *services.AnomalyService) *AnomalyHandler {
	return &AnomalyHandler{service: service}
}

// List returns recent anomalies for the caller's tenant
func (h *AnomalyHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	anomalies, err := h.service.List(r.Context(), claims.TenantID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, anomalies)
}

// UpdateStatus updates an anomaly's triage status
func (h *AnomalyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, errors.Unauthorized("missing claims"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.UpdateStatus(r.Context(), claims.TenantID, id, body.Status); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": body.Status})
}
