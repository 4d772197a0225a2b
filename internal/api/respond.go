package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/ledger"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps domain errors to HTTP statuses. Validation failures are
// 4xx; anything unrecognized is an internal error and logged at full detail
// while the client only sees a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNoParticipants),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, ledger.ErrUnknownSplitType),
		errors.Is(err, service.ErrSettleSelf),
		errors.Is(err, service.ErrSettleNonPositive),
		errors.Is(err, auth.ErrWeakPassword):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("internal error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
