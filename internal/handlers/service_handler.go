package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/cache"
	svcdomain "github.com/glowbook/salon-platform/internal/domain/service"
	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type ServiceHandler struct {
	db      *gorm.DB
	bus     *events.Bus
	catalog *cache.Catalog
}

func NewServiceHandler(db *gorm.DB, bus *events.Bus, catalog *cache.Catalog) *ServiceHandler {
	return &ServiceHandler{db: db, bus: bus, catalog: catalog}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMin     int    `json:"duration_min" binding:"required,min=1"`
	PriceCents      int64  `json:"price_cents" binding:"required"`
	Category        string `json:"category"`
	DepositRequired bool   `json:"deposit_required"`
	DepositCents    int64  `json:"deposit_cents"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMin     *int    `json:"duration_min,omitempty"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	Category        *string `json:"category,omitempty"`
	Active          *bool   `json:"active,omitempty"`
	DepositRequired *bool   `json:"deposit_required,omitempty"`
	DepositCents    *int64  `json:"deposit_cents,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.ServiceOffering
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	svc := models.ServiceOffering{
		SalonID:         salonID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		PriceCents:      req.PriceCents,
		Category:        req.Category,
		Active:          true,
		DepositRequired: req.DepositRequired,
		DepositCents:    req.DepositCents,
	}

	if err := svcdomain.Validate(&svc); err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Invalid service settings.")
		return
	}

	err := withPlanGuard(h.db, tenantID,
		func(tx *gorm.DB) (int64, error) {
			var n int64
			err := tx.Model(&models.ServiceOffering{}).
				Joins("JOIN salons ON salons.id = service_offerings.salon_id").
				Where("salons.tenant_id = ?", tenantID).
				Count(&n).Error
			return n, err
		},
		domaintenant.CanAddService,
		func(tx *gorm.DB) error {
			return tx.Create(&svc).Error
		},
	)
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.Conflict(c, code, "Plan limit reached for services.")
			return
		}
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	h.invalidateCatalog(c, salonID)
	h.bus.Publish(c.Request.Context(), svcdomain.NewCreated(svc.ID, tenantID, svc.Name))

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var svc models.ServiceOffering
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.PriceCents != nil {
		svc.PriceCents = *req.PriceCents
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.DepositRequired != nil {
		svc.DepositRequired = *req.DepositRequired
		if !svc.DepositRequired {
			svc.DepositCents = 0
		}
	}
	if req.DepositCents != nil {
		svc.DepositCents = *req.DepositCents
	}

	if err := svcdomain.Validate(&svc); err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Invalid service settings.")
		return
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to save service.")
		return
	}

	h.invalidateCatalog(c, salonID)
	h.bus.Publish(c.Request.Context(), svcdomain.NewUpdated(svc.ID, tenantID))

	c.JSON(http.StatusOK, svc)
}

// Delete removes the offering. Existing bookings keep their snapshotted
// reference; new bookings simply stop finding it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	res := h.db.
		Where("id = ? AND salon_id = ?", c.Param("id"), salonID).
		Delete(&models.ServiceOffering{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to delete service.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	h.invalidateCatalog(c, salonID)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ServiceHandler) invalidateCatalog(c *gin.Context, salonID uint) {
	if h.catalog == nil {
		return
	}

	var salon models.Salon
	if err := h.db.Select("slug").First(&salon, salonID).Error; err != nil {
		return
	}

	h.catalog.Invalidate(c.Request.Context(), salon.Slug)
}
