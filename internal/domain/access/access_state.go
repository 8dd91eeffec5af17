package access

import (
	"time"

	"sitelog-backend/internal/domain/billing"
)

// ComputeProjectAccessState derives what members may do with a project
// from its newest subscription row. sub is nil when the project was never
// provisioned, which locks it.
func ComputeProjectAccessState(now time.Time, sub *billing.ProjectSubscription) State {
	if sub == nil {
		return StateLocked
	}

	switch sub.Status {
	case billing.StatusActive, billing.StatusTrialing:
		return StateFull

	case billing.StatusPastDue:
		return StateLimited

	case billing.StatusCanceled:
		// Documentation stays readable until the paid-through date.
		if sub.PeriodEnd != nil && now.Before(*sub.PeriodEnd) {
			return StateLimited
		}
		return StateLocked

	default:
		return StateLocked
	}
}
