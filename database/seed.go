package database

import (
	"fmt"
	"log"

	"sitelog-backend/internal/domain/plans"
)

// SeedCatalog inserts the default plans and storage addons. FirstOrCreate
// keeps redeploys from overwriting prices an admin tuned by hand.
func SeedCatalog() {
	defaultPlans := []plans.Plan{
		{ID: "free", Name: "Free", PriceCents: 0, IncludedSeats: 1, ExtraSeatPriceCents: 0, StorageGB: 1, Active: true},
		{ID: "small", Name: "Small", PriceCents: 19900, IncludedSeats: 5, ExtraSeatPriceCents: 1500, StorageGB: 50, Active: true},
		{ID: "team", Name: "Team", PriceCents: 49900, IncludedSeats: 15, ExtraSeatPriceCents: 1200, StorageGB: 250, Active: true},
		{ID: "business", Name: "Business", PriceCents: 99900, IncludedSeats: 50, ExtraSeatPriceCents: 900, StorageGB: plans.StorageUnlimited, Active: true},
	}

	for _, p := range defaultPlans {
		if err := DB.Where("id = ?", p.ID).FirstOrCreate(&p).Error; err != nil {
			log.Fatal("❌ Failed to seed plan:", err)
		}
	}

	defaultAddons := []plans.StorageAddon{
		{ID: "storage-10gb", Name: "Extra storage 10 GB", StorageGB: 10, PriceCents: 900, Active: true},
		{ID: "storage-50gb", Name: "Extra storage 50 GB", StorageGB: 50, PriceCents: 2900, Active: true},
		{ID: "storage-100gb", Name: "Extra storage 100 GB", StorageGB: 100, PriceCents: 4900, Active: true},
	}

	for _, a := range defaultAddons {
		if err := DB.Where("id = ?", a.ID).FirstOrCreate(&a).Error; err != nil {
			log.Fatal("❌ Failed to seed storage addon:", err)
		}
	}

	fmt.Println("✅ Catalog seeded")
}
