package stripe

import (
	"testing"

	"sitelog-backend/internal/domain/billing"
)

func TestMapSubscriptionStatus(t *testing.T) {
	tests := []struct {
		in   string
		want billing.SubscriptionStatus
	}{
		{"active", billing.StatusActive},
		{"trialing", billing.StatusTrialing},
		{"past_due", billing.StatusPastDue},
		{"unpaid", billing.StatusPastDue},
		{"incomplete", billing.StatusPastDue},
		{"paused", billing.StatusPastDue},
		{"canceled", billing.StatusCanceled},
		{"incomplete_expired", billing.StatusCanceled},
		{" active ", billing.StatusActive},
		{"", billing.StatusPastDue},
		{"something_new", billing.StatusPastDue},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := MapSubscriptionStatus(tc.in); got != tc.want {
				t.Fatalf("MapSubscriptionStatus(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}
