package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	salondomain "github.com/glowbook/salon-platform/internal/domain/salon"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/imaging"
	"github.com/glowbook/salon-platform/internal/infra/storage"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/timezone"
)

const maxLogoUploadBytes = 5 << 20

type SalonHandler struct {
	db    *gorm.DB
	logos *storage.LogoStorage
	bus   *events.Bus
}

func NewSalonHandler(db *gorm.DB, logos *storage.LogoStorage, bus *events.Bus) *SalonHandler {
	return &SalonHandler{db: db, logos: logos, bus: bus}
}

// --------- Requests ---------

type UpdateSalonRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

// --------- Handlers ---------

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Failed to load salon.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive (minutes).")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Failed to save salon settings.")
		return
	}

	h.bus.Publish(c.Request.Context(), salondomain.NewUpdated(salon.ID, tenantID))

	c.JSON(http.StatusOK, salon)
}

// UploadLogo accepts a multipart "logo" file, converts it to WebP and
// stores it in the object bucket.
func (h *SalonHandler) UploadLogo(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	if h.logos == nil {
		httperr.Internal(c, "storage_not_configured", "Object storage is not configured.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo_file", "Send the image in the 'logo' field.")
		return
	}

	if fileHeader.Size > maxLogoUploadBytes {
		httperr.BadRequest(c, "logo_too_large", "Logo must be at most 5MB.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_logo", "Failed to read uploaded file.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_logo", "Failed to read uploaded file.")
		return
	}

	webpData, err := imaging.ToLogoWebP(data)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "File is not a supported image.")
			return
		}
		httperr.Internal(c, "failed_to_convert_logo", "Failed to convert image.")
		return
	}

	url, err := h.logos.UploadLogo(c.Request.Context(), salon.ID, webpData)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_logo", "Failed to store logo.")
		return
	}

	salon.LogoURL = url
	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Failed to save logo URL.")
		return
	}

	h.bus.Publish(c.Request.Context(), salondomain.NewLogoUploaded(salon.ID, tenantID, url))

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
