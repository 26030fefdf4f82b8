package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pay "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))

	return db
}

func TestCheckoutGuards(t *testing.T) {
	db := testDB(t)
	uc := NewCheckout(db, events.NewBus(zap.NewNop()), nil, zap.NewNop())

	t.Run("no open cart", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CheckoutInput{TenantID: 1, SalonID: 1, CustomerID: 1})
		require.Error(t, err)
		assert.Equal(t, "cart_not_found", httperr.BusinessCode(err))
	})

	t.Run("empty cart", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Cart{
			SalonID:    1,
			CustomerID: 2,
			Status:     "open",
		}).Error)

		_, err := uc.Execute(context.Background(), CheckoutInput{TenantID: 1, SalonID: 1, CustomerID: 2})
		require.Error(t, err)
		assert.Equal(t, "cart_empty", httperr.BusinessCode(err))
	})

	t.Run("checked out cart is not reused", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Cart{
			SalonID:    1,
			CustomerID: 3,
			Status:     "checked_out",
		}).Error)

		_, err := uc.Execute(context.Background(), CheckoutInput{TenantID: 1, SalonID: 1, CustomerID: 3})
		require.Error(t, err)
		assert.Equal(t, "cart_not_found", httperr.BusinessCode(err))
	})
}

type fakeProvider struct {
	checkout *pay.Checkout
	err      error
}

func (f *fakeProvider) CreateCheckout(_ context.Context, _ pay.CheckoutInput) (*pay.Checkout, error) {
	return f.checkout, f.err
}

func TestAttachGatewayCheckout(t *testing.T) {
	seed := func(t *testing.T, db *gorm.DB) (*models.Order, *models.Payment) {
		t.Helper()

		order := &models.Order{SalonID: 1, CustomerID: 1, Number: "ORD-deadbeef", Status: "pending", TotalCents: 5000}
		require.NoError(t, db.Create(order).Error)

		payment := &models.Payment{SalonID: 1, OrderID: &order.ID, Reference: "PAY-abcd1234", AmountCents: 5000, Status: "pending"}
		require.NoError(t, db.Create(payment).Error)

		return order, payment
	}

	t.Run("stores the provider ref and checkout url", func(t *testing.T) {
		db := testDB(t)
		order, payment := seed(t, db)

		provider := &fakeProvider{checkout: &pay.Checkout{ProviderRef: "123456", CheckoutURL: "https://pay.example/x"}}
		uc := NewCheckout(db, events.NewBus(zap.NewNop()), provider, zap.NewNop())

		uc.attachGatewayCheckout(context.Background(), order, payment)

		var stored models.Payment
		require.NoError(t, db.First(&stored, payment.ID).Error)
		assert.Equal(t, "123456", stored.ProviderRef)
		assert.Equal(t, "https://pay.example/x", stored.CheckoutURL)
	})

	t.Run("gateway failure is logged and leaves the payment pending", func(t *testing.T) {
		db := testDB(t)
		order, payment := seed(t, db)

		core, logs := observer.New(zapcore.WarnLevel)
		provider := &fakeProvider{err: errors.New("gateway down")}
		uc := NewCheckout(db, events.NewBus(zap.NewNop()), provider, zap.New(core))

		uc.attachGatewayCheckout(context.Background(), order, payment)

		entries := logs.FilterMessage("gateway checkout failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "PAY-abcd1234", entries[0].ContextMap()["payment_reference"])

		var stored models.Payment
		require.NoError(t, db.First(&stored, payment.ID).Error)
		assert.Empty(t, stored.ProviderRef)
		assert.Equal(t, "pending", stored.Status)
	})

	t.Run("persistence failure after the gateway call is logged", func(t *testing.T) {
		db := testDB(t)
		order, payment := seed(t, db)
		require.NoError(t, db.Migrator().DropTable(&models.Payment{}))

		core, logs := observer.New(zapcore.ErrorLevel)
		provider := &fakeProvider{checkout: &pay.Checkout{ProviderRef: "123456"}}
		uc := NewCheckout(db, events.NewBus(zap.NewNop()), provider, zap.New(core))

		uc.attachGatewayCheckout(context.Background(), order, payment)

		entries := logs.FilterMessage("failed to store gateway checkout").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "123456", entries[0].ContextMap()["provider_ref"])
	})
}
