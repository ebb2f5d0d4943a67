package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	bookingService "github.com/skillverse/skillverse/internal/services/booking"
	ledgerService "github.com/skillverse/skillverse/internal/services/ledger"
	reviewService "github.com/skillverse/skillverse/internal/services/review"
	sessionService "github.com/skillverse/skillverse/internal/services/session"
)

// errorResponse is the JSON body returned for every failed request
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the services' typed errors onto HTTP statuses:
// validation 400, insufficient credits 402, authorization 403, not-found
// 404, state conflicts 409, failed completion transactions 503.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, bookingService.ErrSelfBooking),
		errors.Is(err, bookingService.ErrInvalidDuration),
		errors.Is(err, bookingService.ErrInvalidScheduledTime),
		errors.Is(err, reviewService.ErrInvalidRating),
		errors.Is(err, ledgerService.ErrInvalidAmount),
		errors.Is(err, ledgerService.ErrInvalidKind),
		errors.Is(err, ledgerService.ErrInvalidPage):
		status = http.StatusBadRequest

	case errors.Is(err, bookingService.ErrInsufficientCredits):
		status = http.StatusPaymentRequired

	case errors.Is(err, bookingService.ErrNotParticipant),
		errors.Is(err, bookingService.ErrNotHost),
		errors.Is(err, sessionService.ErrNotHost),
		errors.Is(err, sessionService.ErrNotParticipant),
		errors.Is(err, reviewService.ErrNotParticipant):
		status = http.StatusForbidden

	case errors.Is(err, bookingService.ErrHostNotFound),
		errors.Is(err, bookingService.ErrSessionNotFound),
		errors.Is(err, sessionService.ErrSessionNotFound),
		errors.Is(err, reviewService.ErrSessionNotFound):
		status = http.StatusNotFound

	case errors.Is(err, bookingService.ErrInvalidState),
		errors.Is(err, sessionService.ErrInvalidState),
		errors.Is(err, reviewService.ErrNotCompleted),
		errors.Is(err, reviewService.ErrAlreadyReviewed):
		status = http.StatusConflict

	case errors.Is(err, sessionService.ErrTransferFailed):
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
