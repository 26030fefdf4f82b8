package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

// --------- Responses ---------

type TopServiceRow struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Bookings  int64  `json:"bookings"`
}

type OrderStatusRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type SummaryResponse struct {
	BookingsToday     int64            `json:"bookings_today"`
	BookingsThisMonth int64            `json:"bookings_this_month"`
	RevenueCentsMonth int64            `json:"revenue_cents_month"`
	TopServices       []TopServiceRow  `json:"top_services"`
	OrdersByStatus    []OrderStatusRow `json:"orders_by_status"`
}

// --------- Handlers ---------

// Summary aggregates the salon's current activity. Day and month
// boundaries follow the salon's timezone, not the server's.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_salon", "Failed to load salon.")
		return
	}

	loc := locationFromSalon(&salon)
	now := time.Now().In(loc)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var out SummaryResponse

	h.db.Model(&models.Booking{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ? AND status != 'cancelled'",
			salonID, dayStart, dayEnd).
		Count(&out.BookingsToday)

	h.db.Model(&models.Booking{}).
		Where("salon_id = ? AND start_time >= ? AND start_time < ? AND status != 'cancelled'",
			salonID, monthStart, monthEnd).
		Count(&out.BookingsThisMonth)

	// Revenue = completed bookings at their service price plus paid orders.
	var bookingRevenue int64
	h.db.Model(&models.Booking{}).
		Select("COALESCE(SUM(service_offerings.price_cents), 0)").
		Joins("JOIN service_offerings ON service_offerings.id = bookings.service_offering_id").
		Where("bookings.salon_id = ? AND bookings.status = 'completed' AND bookings.start_time >= ? AND bookings.start_time < ?",
			salonID, monthStart, monthEnd).
		Scan(&bookingRevenue)

	var orderRevenue int64
	h.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_cents), 0)").
		Where("salon_id = ? AND status IN ('paid', 'fulfilled') AND paid_at >= ? AND paid_at < ?",
			salonID, monthStart, monthEnd).
		Scan(&orderRevenue)

	out.RevenueCentsMonth = bookingRevenue + orderRevenue

	h.db.Model(&models.Booking{}).
		Select("service_offerings.id AS service_id, service_offerings.name AS name, COUNT(*) AS bookings").
		Joins("JOIN service_offerings ON service_offerings.id = bookings.service_offering_id").
		Where("bookings.salon_id = ? AND bookings.start_time >= ? AND bookings.start_time < ? AND bookings.status != 'cancelled'",
			salonID, monthStart, monthEnd).
		Group("service_offerings.id, service_offerings.name").
		Order("bookings DESC").
		Limit(5).
		Scan(&out.TopServices)

	h.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("salon_id = ?", salonID).
		Group("status").
		Scan(&out.OrdersByStatus)

	if out.TopServices == nil {
		out.TopServices = []TopServiceRow{}
	}
	if out.OrdersByStatus == nil {
		out.OrdersByStatus = []OrderStatusRow{}
	}

	c.JSON(http.StatusOK, out)
}
