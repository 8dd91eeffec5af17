package access

import (
	"time"

	"sitelog-backend/internal/domain/billing"
)

type Policy struct {
	State        State    `json:"state"`
	Capabilities []string `json:"capabilities"`
}

func ComputePolicy(now time.Time, sub *billing.ProjectSubscription) Policy {
	state := ComputeProjectAccessState(now, sub)

	return Policy{
		State:        state,
		Capabilities: CapabilitiesFor(state),
	}
}
