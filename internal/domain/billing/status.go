package billing

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrialing SubscriptionStatus = "trialing"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// The provider is authoritative, so every live status may move to any other.
// Canceled is terminal: a canceled subscription never changes again, a new
// checkout creates a fresh record instead.
var statusTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusActive:   {StatusActive, StatusTrialing, StatusPastDue, StatusCanceled},
	StatusTrialing: {StatusActive, StatusTrialing, StatusPastDue, StatusCanceled},
	StatusPastDue:  {StatusActive, StatusTrialing, StatusPastDue, StatusCanceled},
	StatusCanceled: {},
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusCanceled:
		return true
	}
	return false
}
