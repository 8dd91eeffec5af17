package billing

import "context"

// LineItem is one ad-hoc recurring price on a checkout session. Amounts come
// from the local catalog, so line items carry prices instead of referencing
// provider-side price objects.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int64
}

type CheckoutParams struct {
	CustomerID        string
	ClientReferenceID string
	LineItems         []LineItem

	// Metadata carries the serialized CheckoutIntent on the session object.
	// SubscriptionMetadata is mirrored onto the provider subscription.
	Metadata             map[string]string
	SubscriptionMetadata map[string]string

	SuccessURL string
	CancelURL  string

	// IdempotencyKey suppresses duplicate sessions when the SDK retries the
	// call internally.
	IdempotencyKey string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PortalParams struct {
	CustomerID string
	ReturnURL  string
}

// PaymentProvider is the narrow slice of the billing provider the API layer
// needs. The concrete client lives in internal/infra/stripe and is built once
// in main, never as a package-level singleton.
type PaymentProvider interface {
	CreateCustomer(ctx context.Context, email string, userID uint) (string, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
	CreatePortalSession(ctx context.Context, params PortalParams) (string, error)
}
