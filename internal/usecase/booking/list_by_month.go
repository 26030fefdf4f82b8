package booking

import (
	"context"
	"time"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/dto"
	"github.com/glowbook/salon-platform/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

// MonthOutput feeds the calendar view: the flat item list plus a
// per-day count keyed by YYYY-MM-DD in the salon's timezone.
type MonthOutput struct {
	Items  []dto.BookingListDTO `json:"items"`
	Counts map[string]int       `json:"counts"`
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	salonID uint,
	year int,
	month int,
) (*MonthOutput, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	out := &MonthOutput{
		Items:  make([]dto.BookingListDTO, 0, len(bookings)),
		Counts: make(map[string]int),
	}

	for _, b := range bookings {
		out.Items = append(out.Items, dto.BookingListDTO{
			ID:           b.ID,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			Status:       b.Status,
			CustomerName: b.Customer.Name,
			ServiceName:  b.ServiceOffering.Name,
		})

		out.Counts[b.StartTime.In(loc).Format("2006-01-02")]++
	}

	return out, nil
}
