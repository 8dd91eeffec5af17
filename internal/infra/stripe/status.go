package stripe

import (
	"strings"

	"sitelog-backend/internal/domain/billing"
)

// MapSubscriptionStatus normalizes a provider subscription status into one
// of our four states. Statuses we have no use for (unpaid, incomplete,
// paused) collapse into past_due so the project degrades instead of
// vanishing; incomplete_expired means the mandate died, same as canceled.
func MapSubscriptionStatus(s string) billing.SubscriptionStatus {
	switch strings.TrimSpace(s) {
	case "active":
		return billing.StatusActive
	case "trialing":
		return billing.StatusTrialing
	case "past_due", "unpaid", "incomplete", "paused":
		return billing.StatusPastDue
	case "canceled", "incomplete_expired":
		return billing.StatusCanceled
	default:
		return billing.StatusPastDue
	}
}
