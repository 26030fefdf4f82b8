package mercadopago

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/glowbook/salon-platform/internal/config"
	"github.com/glowbook/salon-platform/internal/domain/payment"
)

// Provider implements payment.Provider and payment.Verifier with
// Mercado Pago checkout preferences.
type Provider struct {
	prefs      preference.Client
	payments   mppayment.Client
	successURL string
	failureURL string
}

func NewProvider(cfg *appconfig.Config) (*Provider, error) {
	mpCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Provider{
		prefs:      preference.NewClient(mpCfg),
		payments:   mppayment.NewClient(mpCfg),
		successURL: cfg.PaymentSuccessURL,
		failureURL: cfg.PaymentFailureURL,
	}, nil
}

func (p *Provider) CreateCheckout(ctx context.Context, in payment.CheckoutInput) (*payment.Checkout, error) {
	req := preference.Request{
		ExternalReference: in.Reference,
		Items: []preference.ItemRequest{
			{
				Title:     in.Title,
				Quantity:  1,
				UnitPrice: float64(in.AmountCents) / 100,
			},
		},
	}

	if in.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: in.PayerEmail}
	}

	if p.successURL != "" || p.failureURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: p.successURL,
			Failure: p.failureURL,
		}
	}

	res, err := p.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &payment.Checkout{
		ProviderRef: res.ID,
		CheckoutURL: res.InitPoint,
	}, nil
}

func (p *Provider) GetPayment(ctx context.Context, providerRef string) (*payment.GatewayPayment, error) {
	id, err := strconv.Atoi(providerRef)
	if err != nil {
		return nil, fmt.Errorf("mercadopago payment id %q: %w", providerRef, err)
	}

	res, err := p.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &payment.GatewayPayment{
		ProviderRef:       strconv.Itoa(res.ID),
		ExternalReference: res.ExternalReference,
		Approved:          res.Status == "approved",
	}, nil
}
