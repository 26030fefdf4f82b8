package handlers

import (
	"time"

	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
)

func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil && salon.Timezone != "" {
		if loc, err := time.LoadLocation(salon.Timezone); err == nil {
			return loc
		}
	}

	return timezone.Location(timezone.DefaultTimezone)
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}
