package order

import "github.com/glowbook/salon-platform/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

func CanMarkPaid(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanFulfill(current Status) error {
	if current != StatusPaid {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusFulfilled, StatusCancelled:
		return true
	}
	return false
}
