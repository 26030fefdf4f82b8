package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	ucbooking "github.com/glowbook/salon-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC      *ucbooking.CreateBooking
	completeUC    *ucbooking.CompleteBooking
	cancelUC      *ucbooking.CancelBooking
	noShowUC      *ucbooking.MarkNoShow
	listByDateUC  *ucbooking.ListBookingsByDate
	listByMonthUC *ucbooking.ListBookingsByMonth
}

func NewBookingHandler(
	createUC *ucbooking.CreateBooking,
	completeUC *ucbooking.CompleteBooking,
	cancelUC *ucbooking.CancelBooking,
	noShowUC *ucbooking.MarkNoShow,
	listByDateUC *ucbooking.ListBookingsByDate,
	listByMonthUC *ucbooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		noShowUC:      noShowUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	BranchID      uint   `json:"branch_id"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		TenantID:      tenantID,
		SalonID:       salonID,
		BranchID:      req.BranchID,
		StaffID:       staffID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, out)
}

func writeBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "":
		httperr.Internal(c, "failed_to_create_booking", "Failed to create booking.")
	case "time_conflict":
		httperr.Conflict(c, code, "The slot is already taken.")
	case "booking_not_found", "service_not_found", "branch_not_found":
		httperr.NotFound(c, code, "Not found.")
	default:
		httperr.BadRequest(c, code, "Booking rejected.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDateInSalon(nil, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), staffID, salonID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeState(c, func(tenantID, salonID, staffID, bookingID uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), tenantID, salonID, staffID, bookingID)
	})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.changeState(c, func(tenantID, salonID, staffID, bookingID uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), tenantID, salonID, staffID, bookingID)
	})
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.changeState(c, func(tenantID, salonID, staffID, bookingID uint) (any, error) {
		return h.noShowUC.Execute(c.Request.Context(), tenantID, salonID, staffID, bookingID)
	})
}

func (h *BookingHandler) changeState(
	c *gin.Context,
	run func(tenantID, salonID, staffID, bookingID uint) (any, error),
) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := run(tenantID, salonID, staffID, uint(id))
	if err != nil {
		switch code := httperr.BusinessCode(err); code {
		case "booking_not_found":
			httperr.NotFound(c, code, "Booking not found.")
		case "invalid_state":
			httperr.BadRequest(c, code, "Booking cannot change to that state.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
		}
		return
	}

	c.JSON(200, b)
}
