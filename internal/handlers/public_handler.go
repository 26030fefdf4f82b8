package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/cache"
	domain "github.com/glowbook/salon-platform/internal/domain/booking"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
	ucbooking "github.com/glowbook/salon-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated storefront: salon pages,
// the service catalog, availability and customer-initiated bookings.
// Catalog reads go through Redis; everything else hits the database.
type PublicHandler struct {
	db             *gorm.DB
	catalog        *cache.Catalog
	availabilityUC *ucbooking.GetAvailability
	createUC       *ucbooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	catalog *cache.Catalog,
	availabilityUC *ucbooking.GetAvailability,
	createUC *ucbooking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		catalog:        catalog,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// ======================================================
// RESPONSES
// ======================================================

type PublicSalonResponse struct {
	Salon    PublicSalonInfo          `json:"salon"`
	Services []models.ServiceOffering `json:"services"`
}

type PublicSalonInfo struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LogoURL  string `json:"logo_url"`
	Timezone string `json:"timezone"`
}

type PublicStaffInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

// ======================================================
// SALON PAGE
// ======================================================

func (h *PublicHandler) GetSalon(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var cached PublicSalonResponse
	if h.catalog.Get(ctx, slug, "page", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var services []models.ServiceOffering
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_get_salon", "Failed to load salon page.")
		return
	}

	out := PublicSalonResponse{
		Salon: PublicSalonInfo{
			Name:     salon.Name,
			Slug:     salon.Slug,
			Phone:    salon.Phone,
			Address:  salon.Address,
			LogoURL:  salon.LogoURL,
			Timezone: salon.Timezone,
		},
		Services: services,
	}

	h.catalog.Set(ctx, slug, "page", out)

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STAFF
// ======================================================

func (h *PublicHandler) ListStaff(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var cached []PublicStaffInfo
	if h.catalog.Get(ctx, slug, "staff", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Failed to list staff.")
		return
	}

	out := make([]PublicStaffInfo, 0, len(staff))
	for _, s := range staff {
		out = append(out, PublicStaffInfo{ID: s.ID, Name: s.Name})
	}

	h.catalog.Set(ctx, slug, "staff", out)

	c.JSON(http.StatusOK, out)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	staffID, err := strconv.ParseUint(c.Query("staff_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   salon.ID,
		StaffID:   uint(staffID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code == "service_not_found" {
			httperr.NotFound(c, code, "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// BOOKING
// ======================================================

type PublicBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StaffID       uint   `json:"staff_id" binding:"required"`
	BranchID      uint   `json:"branch_id"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var staffCount int64
	h.db.Model(&models.Staff{}).
		Where("id = ? AND salon_id = ? AND active = true", req.StaffID, salon.ID).
		Count(&staffCount)
	if staffCount == 0 {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		TenantID:      salon.TenantID,
		SalonID:       salon.ID,
		BranchID:      req.BranchID,
		StaffID:       req.StaffID,
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

	c.JSON(http.StatusCreated, out)
}
