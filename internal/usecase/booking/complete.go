package booking

import (
	"context"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
)

type CompleteBooking struct {
	repo domain.Repository
	bus  *events.Bus
}

func NewCompleteBooking(repo domain.Repository, bus *events.Bus) *CompleteBooking {
	return &CompleteBooking{repo: repo, bus: bus}
}

func (uc *CompleteBooking) Execute(
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
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, domain.NewCompleted(b.ID, tenantID))

	return b, nil
}
