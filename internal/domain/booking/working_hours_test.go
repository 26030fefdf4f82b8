package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestWithinWorkingHours(t *testing.T) {
	wh := &models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "18:00",
	}

	t.Run("inside the schedule", func(t *testing.T) {
		assert.True(t, WithinWorkingHours(wh, at(10, 0), at(10, 30)))
	})

	t.Run("exactly filling the schedule", func(t *testing.T) {
		assert.True(t, WithinWorkingHours(wh, at(9, 0), at(18, 0)))
	})

	t.Run("starts before opening", func(t *testing.T) {
		assert.False(t, WithinWorkingHours(wh, at(8, 30), at(9, 30)))
	})

	t.Run("ends after closing", func(t *testing.T) {
		assert.False(t, WithinWorkingHours(wh, at(17, 45), at(18, 15)))
	})

	t.Run("inactive day", func(t *testing.T) {
		off := &models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "18:00"}
		assert.False(t, WithinWorkingHours(off, at(10, 0), at(10, 30)))
	})

	t.Run("nil schedule", func(t *testing.T) {
		assert.False(t, WithinWorkingHours(nil, at(10, 0), at(10, 30)))
	})
}

func TestWithinWorkingHoursBreak(t *testing.T) {
	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}

	t.Run("overlapping the break start", func(t *testing.T) {
		assert.False(t, WithinWorkingHours(wh, at(11, 30), at(12, 30)))
	})

	t.Run("fully inside the break", func(t *testing.T) {
		assert.False(t, WithinWorkingHours(wh, at(12, 15), at(12, 45)))
	})

	t.Run("ending exactly at break start", func(t *testing.T) {
		assert.True(t, WithinWorkingHours(wh, at(11, 0), at(12, 0)))
	})

	t.Run("starting exactly at break end", func(t *testing.T) {
		assert.True(t, WithinWorkingHours(wh, at(13, 0), at(14, 0)))
	})
}

func TestValidateSchedule(t *testing.T) {
	t.Run("valid day with break", func(t *testing.T) {
		assert.NoError(t, ValidateSchedule(true, "09:00", "18:00", "12:00", "13:00"))
	})

	t.Run("valid day without break", func(t *testing.T) {
		assert.NoError(t, ValidateSchedule(true, "09:00", "18:00", "", ""))
	})

	t.Run("inactive day may be blank", func(t *testing.T) {
		assert.NoError(t, ValidateSchedule(false, "", "", "", ""))
	})

	t.Run("25:00 is not a time", func(t *testing.T) {
		err := ValidateSchedule(true, "25:00", "18:00", "", "")
		assert.Equal(t, "invalid_time_format", httperr.BusinessCode(err))
	})

	t.Run("end before start", func(t *testing.T) {
		err := ValidateSchedule(true, "18:00", "09:00", "", "")
		assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))
	})

	t.Run("zero-length day", func(t *testing.T) {
		err := ValidateSchedule(true, "09:00", "09:00", "", "")
		assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))
	})

	t.Run("half a break", func(t *testing.T) {
		err := ValidateSchedule(true, "09:00", "18:00", "12:00", "")
		assert.Equal(t, "invalid_time_format", httperr.BusinessCode(err))
	})

	t.Run("inverted break", func(t *testing.T) {
		err := ValidateSchedule(true, "09:00", "18:00", "13:00", "12:00")
		assert.Equal(t, "invalid_time_range", httperr.BusinessCode(err))
	})

	t.Run("break spills past closing", func(t *testing.T) {
		err := ValidateSchedule(true, "09:00", "18:00", "17:30", "18:30")
		assert.Equal(t, "break_outside_schedule", httperr.BusinessCode(err))
	})
}
