package stripewebhooks

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
)

// handleInvoicePaid records the payment and, when the subscription was
// behind, brings it back to active. Recovery happens here because the
// provider can bill a past_due subscription before it sends any
// subscription.updated event.
func (h *Handler) handleInvoicePaid(inv *stripe.Invoice) error {
	if inv.Subscription == nil || inv.Subscription.ID == "" {
		// One-off invoices are not ours to reconcile.
		return nil
	}

	sub, err := h.store.SubscriptionByProviderID(inv.Subscription.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fmt.Printf("📭 invoice %s for unknown subscription %s, acknowledging\n", inv.ID, inv.Subscription.ID)
			return nil
		}
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	if sub.Status.CanTransitionTo(billing.StatusActive) {
		if err := h.store.UpdateSubscriptionStatus(sub.ID, billing.StatusActive, invoicePeriodEnd(inv)); err != nil {
			return fmt.Errorf("failed to activate subscription: %w", err)
		}
	}

	payment := &billing.Payment{
		ProjectID:             sub.ProjectID,
		ProjectSubscriptionID: &sub.ID,
		AmountCents:           inv.AmountPaid,
		Currency:              string(inv.Currency),
		Status:                billing.PaymentSucceeded,
	}
	if inv.ID != "" {
		payment.StripeInvoiceID = &inv.ID
	}
	if inv.HostedInvoiceURL != "" {
		payment.ReceiptURL = &inv.HostedInvoiceURL
	}
	if err := h.store.RecordPayment(payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	return nil
}

func (h *Handler) handleInvoicePaymentFailed(inv *stripe.Invoice) error {
	if inv.Subscription == nil || inv.Subscription.ID == "" {
		return nil
	}

	sub, err := h.store.SubscriptionByProviderID(inv.Subscription.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fmt.Printf("📭 failed invoice %s for unknown subscription %s, acknowledging\n", inv.ID, inv.Subscription.ID)
			return nil
		}
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	if sub.Status.CanTransitionTo(billing.StatusPastDue) {
		if err := h.store.UpdateSubscriptionStatus(sub.ID, billing.StatusPastDue, nil); err != nil {
			return fmt.Errorf("failed to mark subscription past due: %w", err)
		}
		fmt.Printf("🚫 payment failed for subscription %s, project %s is past due\n", inv.Subscription.ID, sub.ProjectID)
	}

	payment := &billing.Payment{
		ProjectID:             sub.ProjectID,
		ProjectSubscriptionID: &sub.ID,
		AmountCents:           inv.AmountDue,
		Currency:              string(inv.Currency),
		Status:                billing.PaymentFailed,
	}
	if inv.ID != "" {
		payment.StripeInvoiceID = &inv.ID
	}
	if err := h.store.RecordPayment(payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	return nil
}

// invoicePeriodEnd pulls the paid-through date from the invoice's first
// subscription line. nil keeps the stored period end untouched.
func invoicePeriodEnd(inv *stripe.Invoice) *time.Time {
	if inv.Lines == nil || len(inv.Lines.Data) == 0 || inv.Lines.Data[0].Period == nil {
		return nil
	}
	end := time.Unix(inv.Lines.Data[0].Period.End, 0)
	return &end
}
