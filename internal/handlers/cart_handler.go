package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
	uccart "github.com/glowbook/salon-platform/internal/usecase/cart"
)

// ======================================================
// HANDLER
// ======================================================

type CartHandler struct {
	db         *gorm.DB
	checkoutUC *uccart.Checkout
}

func NewCartHandler(db *gorm.DB, checkoutUC *uccart.Checkout) *CartHandler {
	return &CartHandler{db: db, checkoutUC: checkoutUC}
}

// ======================================================
// REQUESTS
// ======================================================

type AddCartItemRequest struct {
	CustomerID       uint `json:"customer_id" binding:"required"`
	ProductVariantID uint `json:"product_variant_id" binding:"required"`
	Quantity         int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=0"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *CartHandler) openCart(c *gin.Context, salonID, customerID uint, create bool) (*models.Cart, bool) {
	var cart models.Cart
	err := h.db.
		Preload("Items").
		Preload("Items.ProductVariant").
		Where("salon_id = ? AND customer_id = ? AND status = 'open'", salonID, customerID).
		First(&cart).Error

	if err == nil {
		return &cart, true
	}

	if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_cart", "Failed to load cart.")
		return nil, false
	}

	if !create {
		httperr.NotFound(c, "cart_not_found", "No open cart for this customer.")
		return nil, false
	}

	cart = models.Cart{
		SalonID:    salonID,
		CustomerID: customerID,
		Status:     "open",
	}
	if err := h.db.Create(&cart).Error; err != nil {
		httperr.Internal(c, "failed_to_create_cart", "Failed to create cart.")
		return nil, false
	}

	return &cart, true
}

func cartTotals(cart *models.Cart) int64 {
	var total int64
	for _, it := range cart.Items {
		total += it.ProductVariant.PriceCents * int64(it.Quantity)
	}
	return total
}

// ======================================================
// GET
// ======================================================

func (h *CartHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	cart, ok := h.openCart(c, salonID, uint(customerID), false)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":        cart,
		"total_cents": cartTotals(cart),
	})
}

// ======================================================
// ADD ITEM
// ======================================================

func (h *CartHandler) AddItem(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var customerCount int64
	h.db.Model(&models.Customer{}).
		Where("id = ? AND salon_id = ?", req.CustomerID, salonID).
		Count(&customerCount)
	if customerCount == 0 {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	var variant models.ProductVariant
	if err := h.db.
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.id = ? AND products.salon_id = ? AND products.active = true",
			req.ProductVariantID, salonID).
		First(&variant).Error; err != nil {
		httperr.NotFound(c, "variant_not_found", "Variant not found.")
		return
	}

	cart, ok := h.openCart(c, salonID, req.CustomerID, true)
	if !ok {
		return
	}

	// Same variant twice just bumps the quantity.
	var item models.CartItem
	err := h.db.
		Where("cart_id = ? AND product_variant_id = ?", cart.ID, variant.ID).
		First(&item).Error

	if err == gorm.ErrRecordNotFound {
		item = models.CartItem{
			CartID:           cart.ID,
			ProductVariantID: variant.ID,
			Quantity:         req.Quantity,
		}
		err = h.db.Create(&item).Error
	} else if err == nil {
		item.Quantity += req.Quantity
		err = h.db.Save(&item).Error
	}

	if err != nil {
		httperr.Internal(c, "failed_to_add_item", "Failed to add item to cart.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "item": item})
}

// ======================================================
// UPDATE / REMOVE ITEM
// ======================================================

func (h *CartHandler) UpdateItem(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	itemID := c.Param("item_id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var item models.CartItem
	if err := h.db.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.salon_id = ? AND carts.status = 'open'", itemID, salonID).
		First(&item).Error; err != nil {
		httperr.NotFound(c, "cart_item_not_found", "Cart item not found.")
		return
	}

	if req.Quantity == 0 {
		if err := h.db.Delete(&item).Error; err != nil {
			httperr.Internal(c, "failed_to_remove_item", "Failed to remove item.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "removed"})
		return
	}

	item.Quantity = req.Quantity
	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Failed to update item.")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	itemID := c.Param("item_id")

	res := h.db.
		Where("id IN (?)",
			h.db.Model(&models.CartItem{}).
				Select("cart_items.id").
				Joins("JOIN carts ON carts.id = cart_items.cart_id").
				Where("cart_items.id = ? AND carts.salon_id = ? AND carts.status = 'open'", itemID, salonID),
		).
		Delete(&models.CartItem{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_item", "Failed to remove item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "cart_item_not_found", "Cart item not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *CartHandler) Checkout(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_customer_id", "Invalid customer id.")
		return
	}

	out, err := h.checkoutUC.Execute(c.Request.Context(), uccart.CheckoutInput{
		TenantID:   tenantID,
		SalonID:    salonID,
		CustomerID: uint(customerID),
	})
	if err != nil {
		switch code := httperr.BusinessCode(err); code {
		case "cart_not_found":
			httperr.NotFound(c, code, "No open cart for this customer.")
		case "cart_empty":
			httperr.BadRequest(c, code, "Cart is empty.")
		case "insufficient_stock":
			httperr.Conflict(c, code, "Not enough stock for one of the items.")
		case "variant_not_found":
			httperr.NotFound(c, code, "A cart item no longer exists.")
		default:
			httperr.Internal(c, "failed_to_checkout", "Checkout failed.")
		}
		return
	}

	c.JSON(http.StatusCreated, out)
}
