package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pay "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/models"
)

// fakeVerifier stands in for the gateway-side payment lookup.
type fakeVerifier struct {
	payment *pay.GatewayPayment
	err     error
	calls   int
}

func (f *fakeVerifier) GetPayment(_ context.Context, _ string) (*pay.GatewayPayment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payment, nil
}

func webhookTestRouter(t *testing.T, verifier pay.Verifier) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Salon{},
		&models.Order{},
		&models.Payment{},
	))

	h := NewWebhookHandler(db, events.NewBus(zap.NewNop()), verifier)

	r := gin.New()
	r.POST("/webhooks/payments", h.PaymentNotification)

	return r, db
}

func seedPendingOrderPayment(t *testing.T, db *gorm.DB) *models.Payment {
	t.Helper()

	require.NoError(t, db.Create(&models.Salon{
		TenantID: 1,
		Name:     "Glow Studio",
		Slug:     "glow-studio",
	}).Error)

	order := models.Order{
		SalonID:    1,
		CustomerID: 1,
		Number:     "ORD-deadbeef",
		Status:     "pending",
		TotalCents: 5000,
	}
	require.NoError(t, db.Create(&order).Error)

	payment := models.Payment{
		SalonID:     1,
		OrderID:     &order.ID,
		Reference:   "PAY-abcd1234",
		AmountCents: 5000,
		Status:      "pending",
	}
	require.NoError(t, db.Create(&payment).Error)

	return &payment
}

func postNotification(r *gin.Engine, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func requireStillPending(t *testing.T, db *gorm.DB, paymentID uint) {
	t.Helper()

	var payment models.Payment
	require.NoError(t, db.First(&payment, paymentID).Error)
	assert.Equal(t, "pending", payment.Status)

	var order models.Order
	require.NoError(t, db.First(&order, *payment.OrderID).Error)
	assert.Equal(t, "pending", order.Status)
}

func TestPaymentNotificationRejectsForgeries(t *testing.T) {
	t.Run("gateway lookup failure leaves payment untouched", func(t *testing.T) {
		verifier := &fakeVerifier{err: errors.New("payment not found")}
		r, db := webhookTestRouter(t, verifier)
		payment := seedPendingOrderPayment(t, db)

		// A guessed reference in the query string must not matter; only
		// the gateway lookup does.
		w := postNotification(r,
			"/webhooks/payments?external_reference=PAY-abcd1234",
			`{"type":"payment","data":{"id":"forged-id"}}`,
		)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, 1, verifier.calls)
		requireStillPending(t, db, payment.ID)
	})

	t.Run("unapproved gateway status is ignored", func(t *testing.T) {
		verifier := &fakeVerifier{payment: &pay.GatewayPayment{
			ProviderRef:       "123456",
			ExternalReference: "PAY-abcd1234",
			Approved:          false,
		}}
		r, db := webhookTestRouter(t, verifier)
		payment := seedPendingOrderPayment(t, db)

		w := postNotification(r,
			"/webhooks/payments",
			`{"type":"payment","data":{"id":"123456"}}`,
		)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ignored")
		requireStillPending(t, db, payment.ID)
	})

	t.Run("no verifier configured refuses to process", func(t *testing.T) {
		r, db := webhookTestRouter(t, nil)
		payment := seedPendingOrderPayment(t, db)

		w := postNotification(r,
			"/webhooks/payments",
			`{"type":"payment","data":{"id":"123456"}}`,
		)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		requireStillPending(t, db, payment.ID)
	})

	t.Run("non-payment events are acknowledged without a lookup", func(t *testing.T) {
		verifier := &fakeVerifier{}
		r, _ := webhookTestRouter(t, verifier)

		w := postNotification(r,
			"/webhooks/payments",
			`{"type":"plan","data":{"id":"123456"}}`,
		)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, verifier.calls)
	})
}
