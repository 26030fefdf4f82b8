package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookingdomain "github.com/glowbook/salon-platform/internal/domain/booking"
	salondomain "github.com/glowbook/salon-platform/internal/domain/salon"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type WorkingHoursHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewWorkingHoursHandler(db *gorm.DB, bus *events.Bus) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, bus: bus}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	BranchID uint               `json:"branch_id"`
	Days     []WorkingDayConfig `json:"days" binding:"required"`
}

// Get returns the authenticated staff member's own schedule; managers
// can pass ?staff_id= to inspect someone else's.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	if s := c.Query("staff_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
			return
		}

		var count int64
		h.db.Model(&models.Staff{}).
			Where("id = ? AND salon_id = ?", id, salonID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "staff_not_found", "Staff member not found.")
			return
		}

		staffID = uint(id)
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	staffID := c.MustGet(middleware.ContextStaffID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if err := bookingdomain.ValidateSchedule(
			d.Active, d.StartTime, d.EndTime, d.BreakStart, d.BreakEnd,
		); err != nil {
			httperr.BadRequest(c, httperr.BusinessCode(err), "Invalid schedule.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				StaffID:    staffID,
				BranchID:   req.BranchID,
				Weekday:    d.Weekday,
				Active:     d.Active,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				BreakStart: d.BreakStart,
				BreakEnd:   d.BreakEnd,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	h.bus.Publish(c.Request.Context(), salondomain.NewBranchHoursUpdated(req.BranchID, tenantID, staffID))

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
