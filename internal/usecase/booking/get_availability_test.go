package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

func TestGetAvailability(t *testing.T) {
	// Tuesday 2026-03-10.
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	setup := func() *fakeRepository {
		repo := newFakeRepository()
		repo.addService(models.ServiceOffering{
			ID:          10,
			SalonID:     1,
			Name:        "Haircut",
			DurationMin: 60,
			Active:      true,
		})
		repo.hours[int(day.Weekday())] = &models.WorkingHours{
			StaffID:   1,
			Weekday:   int(day.Weekday()),
			Active:    true,
			StartTime: "09:00",
			EndTime:   "12:00",
		}
		return repo
	}

	input := domain.AvailabilityInput{
		SalonID:   1,
		StaffID:   1,
		ServiceID: 10,
		Date:      day,
	}

	t.Run("free day yields every slot", func(t *testing.T) {
		uc := NewGetAvailability(setup())

		slots, err := uc.Execute(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, slots, 3)
		assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "10:00"}, slots[0])
		assert.Equal(t, domain.TimeSlot{Start: "10:00", End: "11:00"}, slots[1])
		assert.Equal(t, domain.TimeSlot{Start: "11:00", End: "12:00"}, slots[2])
	})

	t.Run("existing booking removes its slot", func(t *testing.T) {
		repo := setup()
		repo.bookings = append(repo.bookings, &models.Booking{
			ID:        1,
			StaffID:   1,
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(11 * time.Hour),
			Status:    string(domain.StatusScheduled),
		})

		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, slots, 2)
		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "11:00", slots[1].Start)
	})

	t.Run("break window is never offered", func(t *testing.T) {
		repo := setup()
		repo.hours[int(day.Weekday())].EndTime = "14:00"
		repo.hours[int(day.Weekday())].BreakStart = "12:00"
		repo.hours[int(day.Weekday())].BreakEnd = "13:00"

		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(context.Background(), input)
		require.NoError(t, err)

		for _, s := range slots {
			assert.NotEqual(t, "12:00", s.Start)
		}
		assert.Equal(t, "13:00", slots[len(slots)-1].Start)
	})

	t.Run("day off yields no slots", func(t *testing.T) {
		repo := setup()
		repo.hours[int(day.Weekday())].Active = false

		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown service is a business error", func(t *testing.T) {
		repo := setup()
		in := input
		in.ServiceID = 999

		uc := NewGetAvailability(repo)

		_, err := uc.Execute(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, "service_not_found", httperr.BusinessCode(err))
	})
}
