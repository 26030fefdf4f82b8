package booking

import "github.com/glowbook/salon-platform/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// ===============================
// Validations
// ===============================

// CanCancel defines whether a booking may still be cancelled.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete defines whether a booking may be marked as done.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkNoShow defines whether a booking may be flagged as a no-show.
func CanMarkNoShow(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus is the status every new booking starts in.
func InitialStatus() Status {
	return StatusScheduled
}
