package stripewebhooks

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/projects"
)

// handleCheckoutSessionCompleted provisions what the buyer paid for. The
// session metadata carries the full intent, so the event alone is enough.
// Each step is an ensure: a retry after a partial failure completes the
// remaining steps without duplicating the finished ones.
func (h *Handler) handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	intent, err := billing.IntentFromMetadata(session.Metadata)
	if err != nil {
		// Sessions we did not mint (or whose metadata got mangled) can
		// never be provisioned; retries will not fix them.
		fmt.Printf("📭 checkout session %s has no usable intent (%v), acknowledging\n", session.ID, err)
		return nil
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		fmt.Printf("📭 checkout session %s carries no subscription, acknowledging\n", session.ID)
		return nil
	}
	subscriptionID := session.Subscription.ID

	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	// An upgrade targets an existing project; a new checkout ensures a
	// project row keyed by the session id.
	var project *projects.Project
	if intent.UpgradeProjectID != "" {
		project, err = h.store.ProjectByID(intent.UpgradeProjectID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				fmt.Printf("📭 upgrade target %s is gone, acknowledging session %s\n", intent.UpgradeProjectID, session.ID)
				return nil
			}
			return fmt.Errorf("failed to load upgrade target: %w", err)
		}
	} else {
		project, err = h.store.EnsureProjectForSession(session.ID, intent)
		if err != nil {
			return fmt.Errorf("failed to ensure project: %w", err)
		}
	}

	addons, err := h.store.StorageAddonsByIDs(intent.StorageAddonIDs)
	if err != nil {
		return fmt.Errorf("failed to load storage addons: %w", err)
	}
	if len(addons) != len(intent.StorageAddonIDs) {
		// Paid for but retired mid-flight. Provision what resolves; a
		// retry cannot bring the addon back.
		fmt.Printf("⚠️ session %s references %d addons, only %d resolve\n", session.ID, len(intent.StorageAddonIDs), len(addons))
	}

	now := time.Now()
	sub := &billing.ProjectSubscription{
		ProjectID:            project.ID,
		PlanID:               intent.PlanID,
		Status:               billing.StatusActive,
		ExtraSeats:           intent.ExtraSeats,
		ExtraStorageGB:       billing.AddonStorageGB(addons),
		StripeCustomerID:     customerID,
		StripeSubscriptionID: &subscriptionID,
		CheckoutSessionID:    &session.ID,
		PeriodStart:          &now,
	}
	sub.SetAddonIDs(intent.StorageAddonIDs)

	if _, err := h.store.EnsureSubscription(sub); err != nil {
		return fmt.Errorf("failed to ensure subscription: %w", err)
	}

	if err := h.store.EnsureOwnerMember(project.ID, intent.UserID); err != nil {
		return fmt.Errorf("failed to ensure owner membership: %w", err)
	}

	fmt.Printf("✅ provisioned project %s (plan %s) from checkout session %s\n", project.ID, intent.PlanID, session.ID)
	return nil
}
