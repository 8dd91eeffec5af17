package store

import (
	"sitelog-backend/internal/domain/plans"
)

func (s *Store) PlanByID(id string) (*plans.Plan, error) {
	var p plans.Plan
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ActivePlans() ([]plans.Plan, error) {
	var out []plans.Plan
	if err := s.db.Where("active = ?", true).Order("price_cents ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ActiveStorageAddons() ([]plans.StorageAddon, error) {
	var out []plans.StorageAddon
	if err := s.db.Where("active = ?", true).Order("price_cents ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// StorageAddonsByIDs returns the active addons among ids in catalog
// order. Callers compare lengths against the request to reject unknown
// or retired ids.
func (s *Store) StorageAddonsByIDs(ids []string) ([]plans.StorageAddon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []plans.StorageAddon
	if err := s.db.Where("id IN ? AND active = ?", ids, true).Order("price_cents ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
