package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"

	"sitelog-backend/internal/domain/billing"
)

// Provider wraps one Stripe API client. main builds it once and hands it
// to every handler that talks to Stripe; nothing reads the global
// stripe.Key.
type Provider struct {
	api      *client.API
	currency string
}

func NewProvider(secretKey, currency string) *Provider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Provider{api: api, currency: currency}
}

func (p *Provider) CreateCustomer(ctx context.Context, email string, userID uint) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	}
	params.Context = ctx

	cus, err := p.api.Customers.New(params)
	if err != nil {
		return "", &billing.ProviderError{Op: "create customer", Err: err}
	}

	return cus.ID, nil
}

func (p *Provider) CreateCheckoutSession(ctx context.Context, in billing.CheckoutParams) (billing.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, item := range in.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(p.currency),
				UnitAmount: stripe.Int64(item.UnitAmountCents),
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
				},
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(in.CustomerID),

		LineItems: lineItems,
		Metadata:  in.Metadata,

		ClientReferenceID: stripe.String(in.ClientReferenceID),

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: in.SubscriptionMetadata,
		},
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return billing.CheckoutSession{}, &billing.ProviderError{Op: "create checkout session", Err: err}
	}

	return billing.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (p *Provider) CreatePortalSession(ctx context.Context, in billing.PortalParams) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(in.CustomerID),
		ReturnURL: stripe.String(in.ReturnURL),
	}
	params.Context = ctx

	portal, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", &billing.ProviderError{Op: "create portal session", Err: err}
	}

	return portal.URL, nil
}
