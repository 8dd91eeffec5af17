package stripewebhooks

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"

	stripeinfra "sitelog-backend/internal/infra/stripe"
)

func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	existing, err := h.store.SubscriptionByProviderID(sub.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Out-of-order delivery: an update can beat checkout
			// completion. Acknowledge; the completed handler writes the
			// current status when it lands.
			fmt.Printf("📭 update for unknown subscription %s, acknowledging\n", sub.ID)
			return nil
		}
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	next := stripeinfra.MapSubscriptionStatus(string(sub.Status))
	if !existing.Status.CanTransitionTo(next) {
		fmt.Printf("⛔ subscription %s is %s, ignoring transition to %s\n", sub.ID, existing.Status, next)
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	if err := h.store.UpdateSubscriptionStatus(existing.ID, next, &periodEnd); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}
