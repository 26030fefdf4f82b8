package booking

import (
	"context"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
)

type MarkNoShow struct {
	repo domain.Repository
	bus  *events.Bus
}

func NewMarkNoShow(repo domain.Repository, bus *events.Bus) *MarkNoShow {
	return &MarkNoShow{repo: repo, bus: bus}
}

func (uc *MarkNoShow) Execute(
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
	if err := domain.MarkNoShow(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, domain.NewNoShow(b.ID, tenantID))

	return b, nil
}
