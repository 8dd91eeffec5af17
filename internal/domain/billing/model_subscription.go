package billing

import (
	"encoding/json"
	"time"
)

// ProjectSubscription records what a project pays for. A project accumulates
// rows over its life (free start, paid upgrade, a fresh subscription after a
// cancel); the newest row by creation time is the authoritative one. Rows are
// never deleted, only transitioned to canceled.
type ProjectSubscription struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID string `gorm:"type:uuid;not null;index"`
	PlanID    string `gorm:"type:varchar(40);not null"`

	Status SubscriptionStatus `gorm:"type:varchar(20);not null"`

	ExtraSeats      int    `gorm:"not null;default:0"`
	ExtraStorageGB  int64  `gorm:"not null;default:0"`
	StorageAddonIDs string `gorm:"column:storage_addon_ids"`

	StripeCustomerID string `gorm:"column:stripe_customer_id"`

	// StripeSubscriptionID is immutable once assigned and is the idempotency
	// key for every later lifecycle event. Nil on free-tier rows.
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_project_subscriptions_stripe_subscription_id"`

	// CheckoutSessionID is the key the status-lookup endpoint polls on. Nil
	// on free-tier rows, which never go through checkout.
	CheckoutSessionID *string `gorm:"column:checkout_session_id;uniqueIndex:idx_project_subscriptions_checkout_session_id"`

	PeriodStart *time.Time `gorm:"column:period_start"`
	PeriodEnd   *time.Time `gorm:"column:period_end"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetAddonIDs serializes the purchased addon ids into the row. The set is
// fixed at provisioning time.
func (s *ProjectSubscription) SetAddonIDs(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, _ := json.Marshal(ids)
	s.StorageAddonIDs = string(raw)
}

func (s *ProjectSubscription) AddonIDs() []string {
	if s.StorageAddonIDs == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(s.StorageAddonIDs), &ids); err != nil {
		return nil
	}
	return ids
}
