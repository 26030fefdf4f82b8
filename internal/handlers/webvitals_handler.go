package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

type WebVitalsHandler struct {
	db *gorm.DB
}

func NewWebVitalsHandler(db *gorm.DB) *WebVitalsHandler {
	return &WebVitalsHandler{db: db}
}

// --------- Requests ---------

type WebVitalRequest struct {
	Metric    string  `json:"metric" binding:"required"`
	Value     float64 `json:"value" binding:"min=0"`
	Page      string  `json:"page"`
	SessionID string  `json:"session_id"`
}

var allowedMetrics = map[string]bool{
	"LCP":  true,
	"FID":  true,
	"CLS":  true,
	"INP":  true,
	"TTFB": true,
	"FCP":  true,
}

// --------- Handlers ---------

// Ingest stores a single metric reported by a storefront page. The
// endpoint is public and best-effort: bad metrics are rejected, but a
// write failure still answers 202 so the client never retries.
func (h *WebVitalsHandler) Ingest(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Select("id").Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var req WebVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	metric := strings.ToUpper(strings.TrimSpace(req.Metric))
	if !allowedMetrics[metric] {
		httperr.BadRequest(c, "invalid_metric", "Unknown metric name.")
		return
	}

	vital := models.WebVital{
		SalonID:   salon.ID,
		Metric:    metric,
		Value:     req.Value,
		Page:      req.Page,
		SessionID: req.SessionID,
	}

	_ = h.db.Create(&vital).Error

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
