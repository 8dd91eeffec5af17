package stripewebhooks

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
)

func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	existing, err := h.store.SubscriptionByProviderID(sub.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			fmt.Printf("📭 delete for unknown subscription %s, acknowledging\n", sub.ID)
			return nil
		}
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	if existing.Status == billing.StatusCanceled {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	if err := h.store.UpdateSubscriptionStatus(existing.ID, billing.StatusCanceled, &periodEnd); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	fmt.Printf("🔒 subscription %s canceled, project %s stays readable until %s\n", sub.ID, existing.ProjectID, periodEnd.Format(time.RFC3339))
	return nil
}
