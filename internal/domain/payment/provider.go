package payment

import "context"

type CheckoutInput struct {
	Reference   string
	Title       string
	AmountCents int64
	PayerEmail  string
}

type Checkout struct {
	ProviderRef string
	CheckoutURL string
}

// Provider creates hosted checkouts with the payment gateway.
type Provider interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (*Checkout, error)
}

// GatewayPayment is the gateway's authoritative view of a payment,
// fetched back from the provider when a notification arrives. Webhook
// bodies are unauthenticated, so only this lookup decides anything.
type GatewayPayment struct {
	ProviderRef       string
	ExternalReference string
	Approved          bool
}

// Verifier resolves a provider payment id against the gateway.
type Verifier interface {
	GetPayment(ctx context.Context, providerRef string) (*GatewayPayment, error)
}
