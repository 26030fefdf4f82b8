package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`

	Variants []CreateVariantRequest `json:"variants" binding:"required,min=1,dive"`
}

type CreateVariantRequest struct {
	SKU        string `json:"sku" binding:"required"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents" binding:"required,min=0"`
	StockQty   int    `json:"stock_qty" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type UpdateVariantRequest struct {
	Name       *string `json:"name,omitempty"`
	PriceCents *int64  `json:"price_cents,omitempty"`
	StockQty   *int    `json:"stock_qty,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.
		Preload("Variants").
		Order("id ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Failed to list products.")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	product := models.Product{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Active:      true,
	}

	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			SKU:        strings.ToUpper(strings.TrimSpace(v.SKU)),
			Name:       v.Name,
			PriceCents: v.PriceCents,
			StockQty:   v.StockQty,
		})
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Failed to create product (duplicate SKU?).")
		return
	}

	httpresp.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&product).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Failed to save product.")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	variantID := c.Param("variant_id")

	var variant models.ProductVariant
	if err := h.db.
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.id = ? AND products.salon_id = ?", variantID, salonID).
		First(&variant).Error; err != nil {
		httperr.NotFound(c, "variant_not_found", "Variant not found.")
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			httperr.BadRequest(c, "invalid_price", "Price must be zero or positive.")
			return
		}
		variant.PriceCents = *req.PriceCents
	}
	if req.StockQty != nil {
		if *req.StockQty < 0 {
			httperr.BadRequest(c, "invalid_stock", "Stock must be zero or positive.")
			return
		}
		variant.StockQty = *req.StockQty
	}

	if err := h.db.Save(&variant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_variant", "Failed to save variant.")
		return
	}

	c.JSON(http.StatusOK, variant)
}
