package booking

import (
	"time"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

// ValidateSchedule checks the HH:MM fields of one weekday entry before
// they are stored. A malformed time would otherwise make the day
// silently unbookable. Inactive days may leave everything blank.
func ValidateSchedule(active bool, start, end, breakStart, breakEnd string) error {
	if !active {
		return nil
	}

	s, err := time.Parse("15:04", start)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_format")
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_format")
	}
	if !s.Before(e) {
		return httperr.ErrBusiness("invalid_time_range")
	}

	if breakStart == "" && breakEnd == "" {
		return nil
	}

	bs, err := time.Parse("15:04", breakStart)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_format")
	}
	be, err := time.Parse("15:04", breakEnd)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_format")
	}
	if !bs.Before(be) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	if bs.Before(s) || be.After(e) {
		return httperr.ErrBusiness("break_outside_schedule")
	}

	return nil
}

// WithinWorkingHours checks a proposed interval against a staff member's
// schedule for that weekday, including the break window.
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	loc := start.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := parseHM(wh.BreakStart)
		breakEnd := parseHM(wh.BreakEnd)

		if start.Before(breakEnd) && end.After(breakStart) {
			return false
		}
	}

	return true
}
