package billing

import (
	"testing"

	"sitelog-backend/internal/domain/plans"
)

func TestComputeEntitlements(t *testing.T) {
	metered := &plans.Plan{ID: "small", IncludedSeats: 5, StorageGB: 50}
	unmetered := &plans.Plan{ID: "business", IncludedSeats: 50, StorageGB: plans.StorageUnlimited}

	tests := []struct {
		name           string
		plan           *plans.Plan
		extraSeats     int
		extraStorageGB int64
		want           Entitlements
	}{
		{"plan alone", metered, 0, 0, Entitlements{Seats: 5, StorageGB: 50}},
		{"extra seats add up", metered, 3, 0, Entitlements{Seats: 8, StorageGB: 50}},
		{"extra storage adds up", metered, 0, 60, Entitlements{Seats: 5, StorageGB: 110}},
		{"seats and storage together", metered, 2, 10, Entitlements{Seats: 7, StorageGB: 60}},
		{"unmetered plan ignores storage addons", unmetered, 0, 100, Entitlements{Seats: 50, StorageGB: plans.StorageUnlimited}},
		{"unmetered plan still counts seats", unmetered, 10, 0, Entitlements{Seats: 60, StorageGB: plans.StorageUnlimited}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeEntitlements(tc.plan, tc.extraSeats, tc.extraStorageGB)
			if got != tc.want {
				t.Fatalf("ComputeEntitlements() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAddonStorageGB(t *testing.T) {
	if got := AddonStorageGB(nil); got != 0 {
		t.Fatalf("AddonStorageGB(nil) = %d, want 0", got)
	}

	addons := []plans.StorageAddon{
		{ID: "storage-10gb", StorageGB: 10},
		{ID: "storage-50gb", StorageGB: 50},
	}
	if got := AddonStorageGB(addons); got != 60 {
		t.Fatalf("AddonStorageGB() = %d, want 60", got)
	}
}
