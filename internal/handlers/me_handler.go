package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	staffIDVal, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	staffID, ok := staffIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var staff models.Staff
	if err := h.db.Preload("Salon").First(&staff, staffID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       staff.ID,
			"name":     staff.Name,
			"email":    staff.Email,
			"phone":    staff.Phone,
			"role":     staff.Role,
			"salon_id": staff.SalonID,
		},
		"salon": gin.H{
			"id":      staff.Salon.ID,
			"name":    staff.Salon.Name,
			"slug":    staff.Salon.Slug,
			"phone":   staff.Salon.Phone,
			"address": staff.Salon.Address,
		},
	})
}
