package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	salondomain "github.com/glowbook/salon-platform/internal/domain/salon"
	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type BranchHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewBranchHandler(db *gorm.DB, bus *events.Bus) *BranchHandler {
	return &BranchHandler{db: db, bus: bus}
}

// --------- Requests ---------

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BranchHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var branches []models.Branch
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Failed to list branches.")
		return
	}

	httpresp.List(c, branches)
}

func (h *BranchHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	branch := models.Branch{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  true,
	}

	err := withPlanGuard(h.db, tenantID,
		func(tx *gorm.DB) (int64, error) {
			var n int64
			err := tx.Model(&models.Branch{}).
				Joins("JOIN salons ON salons.id = branches.salon_id").
				Where("salons.tenant_id = ?", tenantID).
				Count(&n).Error
			return n, err
		},
		domaintenant.CanAddBranch,
		func(tx *gorm.DB) error {
			return tx.Create(&branch).Error
		},
	)
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.Conflict(c, code, "Plan limit reached for branches.")
			return
		}
		httperr.Internal(c, "failed_to_create_branch", "Failed to create branch.")
		return
	}

	h.bus.Publish(c.Request.Context(), salondomain.NewBranchCreated(branch.ID, tenantID, branch.Name))

	httpresp.Created(c, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var branch models.Branch
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		branch.Name = *req.Name
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Active != nil {
		branch.Active = *req.Active
	}

	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Failed to save branch.")
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		Delete(&models.Branch{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_branch", "Failed to delete branch.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "branch_not_found", "Branch not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
