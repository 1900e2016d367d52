package server

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/splitfool/splitfool/internal/auth"
	"github.com/splitfool/splitfool/internal/calculator"
	"github.com/splitfool/splitfool/internal/service"
	"github.com/splitfool/splitfool/internal/storage"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a domain error to an HTTP status and writes it. Validation
// failures are caller-correctable (400); missing entities are 404; conflicts
// with current state (duplicate names, balance guards) are 409.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateName),
		errors.Is(err, service.ErrUserHasBalances):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, calculator.ErrUnknownPayer),
		errors.Is(err, calculator.ErrNoItems),
		errors.Is(err, calculator.ErrDescriptionTooLong),
		errors.Is(err, calculator.ErrEmptyItemDescription),
		errors.Is(err, calculator.ErrNonPositiveCost),
		errors.Is(err, calculator.ErrNoAssignments),
		errors.Is(err, calculator.ErrFractionRange),
		errors.Is(err, calculator.ErrFractionSum),
		errors.Is(err, calculator.ErrUnknownParticipant),
		errors.Is(err, calculator.ErrNegativeTax),
		errors.Is(err, service.ErrEmptyUserName),
		errors.Is(err, service.ErrUserNameTooLong),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
