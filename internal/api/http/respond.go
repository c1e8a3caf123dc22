package http

import (
	"encoding/json"
	"net/http"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"
)

type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain error kinds onto HTTP status codes. Only conflicts
// are worth an automatic client retry; everything else needs user input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidTransition, domain.KindImmutableState,
		domain.KindAlreadyApproved, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindAuthorization:
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: domain.KindOf(err)})
}
