package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	BranchID *uint  `json:"branch_id"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	BranchID *uint   `json:"branch_id,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func isAssignableRole(role string) bool {
	return role == middleware.RoleManager || role == middleware.RoleStaff
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var staff []models.Staff
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Failed to list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := req.Role
	if role == "" {
		role = middleware.RoleStaff
	}
	if !isAssignableRole(role) {
		httperr.BadRequest(c, "invalid_role", "Role must be manager or staff.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Staff{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "Email already in use.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to hash password.")
		return
	}

	member := models.Staff{
		SalonID:      salonID,
		BranchID:     req.BranchID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         role,
		Active:       true,
	}

	err = withPlanGuard(h.db, tenantID,
		func(tx *gorm.DB) (int64, error) {
			var n int64
			err := tx.Model(&models.Staff{}).
				Joins("JOIN salons ON salons.id = staffs.salon_id").
				Where("salons.tenant_id = ?", tenantID).
				Count(&n).Error
			return n, err
		},
		domaintenant.CanAddStaff,
		func(tx *gorm.DB) error {
			return tx.Create(&member).Error
		},
	)
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.Conflict(c, code, "Plan limit reached for staff.")
			return
		}
		httperr.Internal(c, "failed_to_create_staff", "Failed to create staff member.")
		return
	}

	httpresp.Created(c, member)
}

func (h *StaffHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var member models.Staff
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&member).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Role != nil {
		if member.Role == middleware.RoleOwner {
			httperr.BadRequest(c, "cannot_change_owner_role", "The owner role cannot be changed.")
			return
		}
		if !isAssignableRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "Role must be manager or staff.")
			return
		}
		member.Role = *req.Role
	}
	if req.BranchID != nil {
		member.BranchID = req.BranchID
	}
	if req.Active != nil {
		if member.Role == middleware.RoleOwner && !*req.Active {
			httperr.BadRequest(c, "cannot_disable_owner", "The owner account cannot be disabled.")
			return
		}
		member.Active = *req.Active
	}

	if err := h.db.Save(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Failed to save staff member.")
		return
	}

	c.JSON(http.StatusOK, member)
}
