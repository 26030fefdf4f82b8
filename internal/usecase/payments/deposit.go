package payments

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/glowbook/salon-platform/internal/domain/payment"
	"github.com/glowbook/salon-platform/internal/models"
)

// DepositService creates the pending deposit payment for a booking and
// asks the gateway for a hosted checkout.
type DepositService struct {
	db       *gorm.DB
	provider domain.Provider
}

func NewDepositService(db *gorm.DB, provider domain.Provider) *DepositService {
	return &DepositService{db: db, provider: provider}
}

func (s *DepositService) CreateForBooking(
	ctx context.Context,
	b *models.Booking,
	svc *models.ServiceOffering,
	customer *models.Customer,
) (*models.Payment, error) {

	p := &models.Payment{
		SalonID:     b.SalonID,
		BookingID:   &b.ID,
		Reference:   domain.NewReference(),
		AmountCents: svc.DepositCents,
		Status:      string(domain.StatusPending),
	}

	checkout, err := s.provider.CreateCheckout(ctx, domain.CheckoutInput{
		Reference:   p.Reference,
		Title:       fmt.Sprintf("Deposit: %s", svc.Name),
		AmountCents: svc.DepositCents,
		PayerEmail:  customer.Email,
	})
	if err != nil {
		return nil, err
	}

	p.ProviderRef = checkout.ProviderRef
	p.CheckoutURL = checkout.CheckoutURL

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}

	return p, nil
}
