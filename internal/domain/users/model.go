package users

import "time"

type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Lastname string
	Tel      string

	// Company is the construction firm the user signs documentation for.
	// Free-text; invoicing details live with the payment provider.
	Company string

	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Set once by the first paid checkout. The claim is an atomic
	// conditional update, so concurrent checkouts agree on one id.
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
