// Package outcome classifies admission results for the boundary layer
// and drives the internal retry policy for transient faults.
package outcome

import (
	"errors"
	"net/http"

	"roomledger/internal/pkg/errs"
)

type Classification struct {
	Retryable bool
	Status    int
	Message   string
}

// Classify sorts an error into the admission taxonomy: caller errors
// and contention surface immediately and are never retried; only
// transient infrastructure faults are safe to retry, because a failed
// attempt leaves no trace in the ledger.
func Classify(err error) Classification {
	switch {
	case errors.Is(err, errs.ErrInvalidRange):
		return Classification{
			Status:  http.StatusBadRequest,
			Message: "check-in and check-out must form a valid date range",
		}
	case errors.Is(err, errs.ErrRoomNotFound):
		return Classification{
			Status:  http.StatusNotFound,
			Message: "room not found",
		}
	case errors.Is(err, errs.ErrBookingNotFound):
		return Classification{
			Status:  http.StatusNotFound,
			Message: "booking not found",
		}
	case errors.Is(err, errs.ErrInvalidTransition):
		return Classification{
			Status:  http.StatusUnprocessableEntity,
			Message: "booking status does not allow this transition",
		}
	case errors.Is(err, errs.ErrOverlapConflict):
		// Expected under concurrent load, not a fault. Retrying
		// automatically could violate user intent: the caller chose
		// these dates.
		return Classification{
			Status:  http.StatusConflict,
			Message: "room is already booked for the requested dates",
		}
	case errors.Is(err, errs.ErrLockTimeout), errors.Is(err, errs.ErrTransientStoreFailure):
		return Classification{
			Retryable: true,
			Status:    http.StatusServiceUnavailable,
			Message:   "temporarily unable to process the booking, please retry",
		}
	default:
		return Classification{
			Status:  http.StatusInternalServerError,
			Message: "internal server error",
		}
	}
}
