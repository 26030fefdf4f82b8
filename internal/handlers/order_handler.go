package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-platform/internal/domain/order"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type OrderHandler struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewOrderHandler(db *gorm.DB, bus *events.Bus) *OrderHandler {
	return &OrderHandler{db: db, bus: bus}
}

// --------- Handlers ---------

func (h *OrderHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if status := c.Query("status"); status != "" {
		if !domain.IsValidStatus(domain.Status(status)) {
			httperr.BadRequest(c, "invalid_status", "Unknown order status.")
			return
		}
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.
		Preload("Items").
		Order("id DESC").
		Limit(200).
		Find(&orders).Error; err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Failed to list orders.")
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var order models.Order
	if err := h.db.
		Preload("Items").
		Where("id = ? AND salon_id = ?", c.Param("id"), salonID).
		First(&order).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Fulfill(c *gin.Context) {
	h.transition(c, domain.Fulfill, nil)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	h.transition(c, domain.Cancel, func(o *models.Order) {
		h.bus.Publish(c.Request.Context(), domain.NewCancelled(o.ID, tenantID))
	})
}

func (h *OrderHandler) transition(
	c *gin.Context,
	apply func(*models.Order, time.Time) error,
	after func(*models.Order),
) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var order models.Order
	if err := h.db.
		Where("id = ? AND salon_id = ?", c.Param("id"), salonID).
		First(&order).Error; err != nil {
		httperr.NotFound(c, "order_not_found", "Order not found.")
		return
	}

	if err := apply(&order, time.Now().UTC()); err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Order cannot change to that state.")
		return
	}

	if err := h.db.Save(&order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_order", "Failed to save order.")
		return
	}

	if after != nil {
		after(&order)
	}

	c.JSON(http.StatusOK, order)
}
