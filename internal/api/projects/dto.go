package projects

import (
	"time"

	"sitelog-backend/internal/domain/access"
	"sitelog-backend/internal/domain/billing"
)

type ProjectSummary struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Number string       `json:"number"`
	City   string       `json:"city"`
	Role   string       `json:"role"`
	PlanID string       `json:"plan_id,omitempty"`
	Access access.State `json:"access"`
}

type SubscriptionInfo struct {
	PlanID     string                     `json:"plan_id"`
	PlanName   string                     `json:"plan_name,omitempty"`
	Status     billing.SubscriptionStatus `json:"status"`
	ExtraSeats int                        `json:"extra_seats"`
	PeriodEnd  *time.Time                 `json:"period_end,omitempty"`
}

type ProjectDetail struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Number       string            `json:"number"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	Role         string            `json:"role"`
	CreatedAt    time.Time         `json:"created_at"`
	Access       access.Policy     `json:"access"`
	Subscription *SubscriptionInfo `json:"subscription,omitempty"`
}
