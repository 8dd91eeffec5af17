package access

import (
	"testing"
	"time"

	"sitelog-backend/internal/domain/billing"
)

func TestComputeProjectAccessState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(14 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		sub  *billing.ProjectSubscription
		want State
	}{
		{"no subscription", nil, StateLocked},
		{"active", &billing.ProjectSubscription{Status: billing.StatusActive}, StateFull},
		{"trialing", &billing.ProjectSubscription{Status: billing.StatusTrialing}, StateFull},
		{"past_due", &billing.ProjectSubscription{Status: billing.StatusPastDue}, StateLimited},
		{"canceled inside paid period", &billing.ProjectSubscription{Status: billing.StatusCanceled, PeriodEnd: &future}, StateLimited},
		{"canceled after paid period", &billing.ProjectSubscription{Status: billing.StatusCanceled, PeriodEnd: &past}, StateLocked},
		{"canceled without period end", &billing.ProjectSubscription{Status: billing.StatusCanceled}, StateLocked},
		{"unknown status", &billing.ProjectSubscription{Status: billing.SubscriptionStatus("bogus")}, StateLocked},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeProjectAccessState(now, tc.sub); got != tc.want {
				t.Fatalf("ComputeProjectAccessState() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	full := CapabilitiesFor(StateFull)
	if !contains(full, "write") || !contains(full, "invite") {
		t.Fatalf("full capabilities missing write or invite: %v", full)
	}

	limited := CapabilitiesFor(StateLimited)
	if !contains(limited, "read") || !contains(limited, "export") {
		t.Fatalf("limited capabilities missing read or export: %v", limited)
	}
	if contains(limited, "write") || contains(limited, "upload") {
		t.Fatalf("limited capabilities must not allow writes: %v", limited)
	}

	if locked := CapabilitiesFor(StateLocked); len(locked) != 0 {
		t.Fatalf("locked capabilities = %v, want none", locked)
	}
}

func TestComputePolicy(t *testing.T) {
	now := time.Now()

	p := ComputePolicy(now, &billing.ProjectSubscription{Status: billing.StatusActive})
	if p.State != StateFull {
		t.Fatalf("policy state = %s, want %s", p.State, StateFull)
	}
	if !contains(p.Capabilities, "write") {
		t.Fatalf("full policy missing write: %v", p.Capabilities)
	}

	p = ComputePolicy(now, nil)
	if p.State != StateLocked || len(p.Capabilities) != 0 {
		t.Fatalf("nil subscription policy = %+v, want locked with no capabilities", p)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
