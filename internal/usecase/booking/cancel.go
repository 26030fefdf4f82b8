package booking

import (
	"context"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
)

type CancelBooking struct {
	repo domain.Repository
	bus  *events.Bus
}

func NewCancelBooking(repo domain.Repository, bus *events.Bus) *CancelBooking {
	return &CancelBooking{repo: repo, bus: bus}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	tenantID uint,
	salonID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, domain.NewCancelled(b.ID, tenantID))

	return b, nil
}
