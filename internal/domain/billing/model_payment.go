package billing

import "time"

// Payment statuses written by the invoice webhooks.
const (
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID                    uint    `gorm:"primaryKey"`
	ProjectID             string  `gorm:"type:uuid;not null;index"`
	ProjectSubscriptionID *string `gorm:"type:uuid"`

	// StripeInvoiceID dedupes redelivered invoice events.
	StripeInvoiceID *string `gorm:"uniqueIndex"`

	AmountCents int64
	Currency    string `gorm:"type:varchar(8)"`
	Status      string
	ReceiptURL  *string

	CreatedAt time.Time
}
