package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type TenantHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewTenantHandler(db *gorm.DB, bus *events.Bus) *TenantHandler {
	return &TenantHandler{db: db, bus: bus}
}

// --------- Requests ---------

type UpdateTenantRequest struct {
	Name *string `json:"name,omitempty"`
}

type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// --------- Handlers ---------

func (h *TenantHandler) GetMeTenant(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_tenant", "Failed to load tenant.")
		return
	}

	limits := domaintenant.LimitsFor(domaintenant.Plan(tenant.Plan))

	c.JSON(http.StatusOK, gin.H{
		"tenant": tenant,
		"limits": gin.H{
			"max_branches": limits.MaxBranches,
			"max_staff":    limits.MaxStaff,
			"max_services": limits.MaxServices,
		},
	})
}

func (h *TenantHandler) UpdateMeTenant(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		tenant.Name = *req.Name
	}

	if err := h.db.Save(&tenant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Failed to save tenant.")
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) ChangePlan(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	newPlan := domaintenant.Plan(req.Plan)
	if !domaintenant.IsValidPlan(newPlan) {
		httperr.BadRequest(c, "invalid_plan", "Unknown plan.")
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
		return
	}

	oldPlan := domaintenant.Plan(tenant.Plan)
	if oldPlan == newPlan {
		c.JSON(http.StatusOK, tenant)
		return
	}

	tenant.Plan = string(newPlan)
	if err := h.db.Save(&tenant).Error; err != nil {
		httperr.Internal(c, "failed_to_change_plan", "Failed to change plan.")
		return
	}

	h.bus.Publish(c.Request.Context(), domaintenant.NewPlanChanged(tenant.ID, oldPlan, newPlan))

	c.JSON(http.StatusOK, tenant)
}
