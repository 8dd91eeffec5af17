package store

import (
	"fmt"

	"sitelog-backend/internal/domain/users"
)

func (s *Store) UserByID(id uint) (*users.User, error) {
	var u users.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ClaimStripeCustomerID records customerID on the user unless an earlier
// request already claimed one. The conditional update is what makes
// concurrent first checkouts agree on a single customer; the loser's
// freshly created customer is never referenced again. Returns the id
// that ended up on the row.
func (s *Store) ClaimStripeCustomerID(userID uint, customerID string) (string, error) {
	res := s.db.Model(&users.User{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = '')", userID).
		Update("stripe_customer_id", customerID)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 1 {
		return customerID, nil
	}

	var u users.User
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		return "", err
	}
	if u.StripeCustomerID == nil || *u.StripeCustomerID == "" {
		return "", fmt.Errorf("stripe customer for user %d not claimed", userID)
	}
	return *u.StripeCustomerID, nil
}
