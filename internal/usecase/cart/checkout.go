package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowbook/salon-platform/internal/domain/order"
	pay "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/httperr"
	"github.com/glowbook/salon-platform/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckoutInput struct {
	TenantID   uint
	SalonID    uint
	CustomerID uint
}

type CheckoutOutput struct {
	Order   *models.Order   `json:"order"`
	Payment *models.Payment `json:"payment"`
}

// ======================================================
// USE CASE
// ======================================================

// Checkout converts the customer's open cart into an order. Stock is
// decremented under row locks in the same transaction that creates the
// order, so concurrent checkouts cannot oversell a variant.
type Checkout struct {
	db       *gorm.DB
	bus      *events.Bus
	provider pay.Provider
	log      *zap.Logger
}

func NewCheckout(db *gorm.DB, bus *events.Bus, provider pay.Provider, log *zap.Logger) *Checkout {
	return &Checkout{db: db, bus: bus, provider: provider, log: log}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Checkout) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*CheckoutOutput, error) {

	var (
		order   models.Order
		payment models.Payment
	)

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var cart models.Cart
		if err := tx.
			Preload("Items").
			Preload("Items.ProductVariant").
			Where("salon_id = ? AND customer_id = ? AND status = 'open'", in.SalonID, in.CustomerID).
			First(&cart).Error; err != nil {
			return httperr.ErrBusiness("cart_not_found")
		}

		if len(cart.Items) == 0 {
			return httperr.ErrBusiness("cart_empty")
		}

		items := make([]models.OrderItem, 0, len(cart.Items))

		for _, it := range cart.Items {
			var variant models.ProductVariant
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&variant, it.ProductVariantID).Error; err != nil {
				return httperr.ErrBusiness("variant_not_found")
			}

			if variant.StockQty < it.Quantity {
				return httperr.ErrBusiness("insufficient_stock")
			}

			if err := tx.Model(&variant).
				Update("stock_qty", gorm.Expr("stock_qty - ?", it.Quantity)).Error; err != nil {
				return err
			}

			items = append(items, models.OrderItem{
				ProductVariantID: variant.ID,
				SKU:              variant.SKU,
				Name:             variant.Name,
				UnitPriceCents:   variant.PriceCents,
				Quantity:         it.Quantity,
			})
		}

		subtotal := domain.Subtotal(items)

		order = models.Order{
			SalonID:       in.SalonID,
			CustomerID:    in.CustomerID,
			Number:        domain.NewNumber(),
			Status:        string(domain.InitialStatus()),
			SubtotalCents: subtotal,
			TotalCents:    subtotal,
			Items:         items,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Model(&cart).Update("status", "checked_out").Error; err != nil {
			return err
		}

		payment = models.Payment{
			SalonID:     in.SalonID,
			OrderID:     &order.ID,
			Reference:   pay.NewReference(),
			AmountCents: order.TotalCents,
			Status:      string(pay.StatusPending),
		}

		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	// The gateway call stays outside the transaction; a failure leaves a
	// pending payment that can be retried.
	uc.attachGatewayCheckout(ctx, &order, &payment)

	uc.bus.Publish(ctx, domain.NewPlaced(order.ID, in.TenantID, order.Number, order.TotalCents))

	return &CheckoutOutput{Order: &order, Payment: &payment}, nil
}

// attachGatewayCheckout creates the hosted checkout for an already
// committed order. The order stands either way; failures are logged so
// a payment stuck in pending can be traced back to its cause.
func (uc *Checkout) attachGatewayCheckout(ctx context.Context, order *models.Order, payment *models.Payment) {
	if uc.provider == nil {
		return
	}

	checkout, err := uc.provider.CreateCheckout(ctx, pay.CheckoutInput{
		Reference:   payment.Reference,
		Title:       fmt.Sprintf("Order %s", order.Number),
		AmountCents: payment.AmountCents,
	})
	if err != nil {
		uc.log.Warn("gateway checkout failed",
			zap.String("order_number", order.Number),
			zap.String("payment_reference", payment.Reference),
			zap.Error(err),
		)
		return
	}

	if err := uc.db.WithContext(ctx).Model(payment).Updates(map[string]any{
		"provider_ref": checkout.ProviderRef,
		"checkout_url": checkout.CheckoutURL,
	}).Error; err != nil {
		uc.log.Error("failed to store gateway checkout",
			zap.String("payment_reference", payment.Reference),
			zap.String("provider_ref", checkout.ProviderRef),
			zap.Error(err),
		)
		return
	}

	payment.ProviderRef = checkout.ProviderRef
	payment.CheckoutURL = checkout.CheckoutURL
}
