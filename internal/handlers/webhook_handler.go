package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderdomain "github.com/glowbook/salon-platform/internal/domain/order"
	pay "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/domain/shared"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// WebhookHandler receives asynchronous payment notifications from the
// gateway. The notification body is unauthenticated, so it is only a
// hint: the payment id is looked up back at the gateway, and only the
// gateway's reported status and external reference decide anything.
// Notifications are retried by the provider, so everything here is
// idempotent: a payment already confirmed answers 200 again.
type WebhookHandler struct {
	db       *gorm.DB
	bus      *events.Bus
	verifier pay.Verifier
}

func NewWebhookHandler(db *gorm.DB, bus *events.Bus, verifier pay.Verifier) *WebhookHandler {
	return &WebhookHandler{db: db, bus: bus, verifier: verifier}
}

// ======================================================
// REQUESTS
// ======================================================

type PaymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ======================================================
// PAYMENT NOTIFICATION
// ======================================================

func (h *WebhookHandler) PaymentNotification(c *gin.Context) {
	var notif PaymentNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_notification"})
		return
	}

	if notif.Type != "payment" || notif.Data.ID == "" {
		// Not a payment event; acknowledge so the provider stops retrying.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments_disabled"})
		return
	}

	gw, err := h.verifier.GetPayment(c.Request.Context(), notif.Data.ID)
	if err != nil {
		// 5xx makes the provider retry later.
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed_to_verify_notification"})
		return
	}

	if !gw.Approved {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// Events are recorded during the transaction and published only
	// after it commits.
	var (
		payment  models.Payment
		recorder shared.Recorder
	)

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", gw.ExternalReference).
			First(&payment).Error; err != nil {
			return err
		}

		if pay.Status(payment.Status) == pay.StatusConfirmed {
			return nil
		}

		now := time.Now().UTC()
		if err := pay.Confirm(&payment, now); err != nil {
			return err
		}
		if payment.ProviderRef == "" {
			payment.ProviderRef = gw.ProviderRef
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		var salon models.Salon
		if err := tx.Select("tenant_id").First(&salon, payment.SalonID).Error; err != nil {
			return err
		}

		recorder.Record(pay.NewConfirmed(payment.ID, salon.TenantID, payment.AmountCents))

		if payment.OrderID != nil {
			var order models.Order
			if err := tx.First(&order, *payment.OrderID).Error; err != nil {
				return err
			}
			if err := orderdomain.MarkPaid(&order, now); err != nil {
				return err
			}
			if err := tx.Save(&order).Error; err != nil {
				return err
			}
			recorder.Record(orderdomain.NewPaid(order.ID, salon.TenantID))
		}

		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_process_notification"})
		return
	}

	for _, ev := range recorder.Events() {
		h.bus.Publish(c.Request.Context(), ev)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
