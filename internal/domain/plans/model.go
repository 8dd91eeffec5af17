package plans

import "time"

// StorageUnlimited marks a plan whose storage is not metered.
const StorageUnlimited int64 = -1

type Plan struct {
	ID                  string `gorm:"type:varchar(40);primaryKey" json:"id"`
	Name                string `gorm:"not null" json:"name"`
	PriceCents          int64  `gorm:"not null;default:0" json:"price_cents"`
	IncludedSeats       int    `gorm:"not null;default:1" json:"included_seats"`
	ExtraSeatPriceCents int64  `gorm:"not null;default:0" json:"extra_seat_price_cents"`
	StorageGB           int64  `gorm:"not null;default:0" json:"storage_gb"`
	Active              bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StorageAddon struct {
	ID         string `gorm:"type:varchar(40);primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	StorageGB  int64  `gorm:"not null" json:"storage_gb"`
	PriceCents int64  `gorm:"not null" json:"price_cents"`
	Active     bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
