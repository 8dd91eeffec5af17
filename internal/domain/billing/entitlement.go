package billing

import "sitelog-backend/internal/domain/plans"

// Entitlements is the effective resource allowance a project holds given
// its plan plus purchased extras. StorageGB carries plans.StorageUnlimited
// when the plan is unmetered.
type Entitlements struct {
	Seats     int   `json:"seats"`
	StorageGB int64 `json:"storage_gb"`
}

// ComputeEntitlements is pure. extraStorageGB is the addon sum persisted on
// the subscription row, so retired addons keep counting for the projects
// that bought them. An unmetered plan stays unmetered no matter what rides
// along.
func ComputeEntitlements(plan *plans.Plan, extraSeats int, extraStorageGB int64) Entitlements {
	seats := plan.IncludedSeats + extraSeats

	if plan.StorageGB == plans.StorageUnlimited {
		return Entitlements{Seats: seats, StorageGB: plans.StorageUnlimited}
	}

	return Entitlements{Seats: seats, StorageGB: plan.StorageGB + extraStorageGB}
}

// AddonStorageGB sums the storage increments of the selected addons. The
// sum is written to the subscription row at provisioning time.
func AddonStorageGB(addons []plans.StorageAddon) int64 {
	var total int64
	for _, addon := range addons {
		total += addon.StorageGB
	}
	return total
}
