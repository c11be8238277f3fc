package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, appErr)
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"code":    apperrors.ErrCodeInternal,
		"message": "internal error",
	})
}
