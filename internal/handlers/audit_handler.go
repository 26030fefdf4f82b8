package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/httpresp"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
)

type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// --------- Helpers ---------

func (h *AuditHandler) scopedQuery(c *gin.Context) *gorm.DB {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Model(&models.AuditLog{}).Where("tenant_id = ?", tenantID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	return q
}

// --------- Handlers ---------

func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := h.scopedQuery(c).Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := h.scopedQuery(c).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	httpresp.Page(c, logs, total, page, pageSize)
}

// Export streams the filtered logs as CSV. Capped at 10k rows so a
// tenant cannot stall the server with an unbounded dump.
func (h *AuditHandler) Export(c *gin.Context) {
	var logs []models.AuditLog
	if err := h.scopedQuery(c).
		Order("id ASC").
		Limit(10000).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_export_audit_logs", "Failed to export audit logs.")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="audit-logs.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "created_at", "action", "entity", "entity_id", "staff_id", "metadata"})

	for _, l := range logs {
		entityID := ""
		if l.EntityID != nil {
			entityID = strconv.FormatUint(uint64(*l.EntityID), 10)
		}
		staffID := ""
		if l.StaffID != nil {
			staffID = strconv.FormatUint(uint64(*l.StaffID), 10)
		}

		_ = w.Write([]string{
			fmt.Sprintf("%d", l.ID),
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.Action,
			l.Entity,
			entityID,
			staffID,
			l.Metadata,
		})
	}

	w.Flush()
}
