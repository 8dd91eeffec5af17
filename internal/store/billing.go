package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/projects"
)

func (s *Store) SubscriptionByProviderID(providerSubID string) (*billing.ProjectSubscription, error) {
	var sub billing.ProjectSubscription
	if err := s.db.Where("stripe_subscription_id = ?", providerSubID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) SubscriptionBySessionID(sessionID string) (*billing.ProjectSubscription, error) {
	var sub billing.ProjectSubscription
	if err := s.db.Where("checkout_session_id = ?", sessionID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// LatestSubscriptionForProject returns the newest subscription row, the
// authoritative one for access and entitlements. Projects without a row
// surface gorm.ErrRecordNotFound.
func (s *Store) LatestSubscriptionForProject(projectID string) (*billing.ProjectSubscription, error) {
	var sub billing.ProjectSubscription
	if err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) UpdateSubscriptionStatus(id string, status billing.SubscriptionStatus, periodEnd *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if periodEnd != nil {
		updates["period_end"] = *periodEnd
	}
	return s.db.Model(&billing.ProjectSubscription{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ProvisionFreeProject creates the project, its subscription row and the
// owner membership in one transaction. Free checkouts never touch the
// payment provider, so there is no session id to link.
func (s *Store) ProvisionFreeProject(intent billing.CheckoutIntent) (*projects.Project, error) {
	project := &projects.Project{
		Name:      intent.ProjectName,
		Number:    intent.ProjectNumber,
		Address:   intent.Address,
		City:      intent.City,
		CreatedBy: intent.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		now := time.Now()
		sub := &billing.ProjectSubscription{
			ProjectID:   project.ID,
			PlanID:      intent.PlanID,
			Status:      billing.StatusActive,
			PeriodStart: &now,
		}
		sub.SetAddonIDs(nil)
		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		member := &projects.ProjectMember{
			ProjectID: project.ID,
			UserID:    intent.UserID,
			Role:      projects.RoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// EnsureProjectForSession finds the project provisioned by a checkout
// session or creates it. Redelivered events land on the find branch, so
// replays never duplicate the project.
func (s *Store) EnsureProjectForSession(sessionID string, intent billing.CheckoutIntent) (*projects.Project, error) {
	var existing projects.Project
	err := s.db.Where("checkout_session_id = ?", sessionID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	project := &projects.Project{
		Name:              intent.ProjectName,
		Number:            intent.ProjectNumber,
		Address:           intent.Address,
		City:              intent.City,
		CreatedBy:         intent.UserID,
		CheckoutSessionID: &sessionID,
	}
	if err := s.db.Create(project).Error; err != nil {
		// A concurrent delivery may have won the unique index.
		var raced projects.Project
		if ferr := s.db.Where("checkout_session_id = ?", sessionID).First(&raced).Error; ferr == nil {
			return &raced, nil
		}
		return nil, err
	}
	return project, nil
}

// EnsureSubscription inserts the row unless the provider subscription id
// is already present. That unique index is the idempotency key for
// redelivered checkout events.
func (s *Store) EnsureSubscription(sub *billing.ProjectSubscription) (*billing.ProjectSubscription, error) {
	if sub.StripeSubscriptionID == nil || *sub.StripeSubscriptionID == "" {
		return nil, fmt.Errorf("ensure subscription: missing provider subscription id")
	}

	var existing billing.ProjectSubscription
	err := s.db.Where("stripe_subscription_id = ?", *sub.StripeSubscriptionID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Create(sub).Error; err != nil {
		var raced billing.ProjectSubscription
		if ferr := s.db.Where("stripe_subscription_id = ?", *sub.StripeSubscriptionID).First(&raced).Error; ferr == nil {
			return &raced, nil
		}
		return nil, err
	}
	return sub, nil
}

// EnsureOwnerMember guarantees the buyer owns the project. Safe on every
// redelivery; the composite unique index stops duplicates.
func (s *Store) EnsureOwnerMember(projectID string, userID uint) error {
	var existing projects.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := &projects.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      projects.RoleOwner,
	}
	if err := s.db.Create(member).Error; err != nil {
		var raced projects.ProjectMember
		if ferr := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&raced).Error; ferr == nil {
			return nil
		}
		return err
	}
	return nil
}

// RecordPayment stores one row per provider invoice. Redelivered events
// with the same outcome are dropped; a changed outcome updates the row,
// so a failed invoice whose retry went through reads as succeeded.
func (s *Store) RecordPayment(p *billing.Payment) error {
	if p.StripeInvoiceID != nil && *p.StripeInvoiceID != "" {
		var existing billing.Payment
		err := s.db.Where("stripe_invoice_id = ?", *p.StripeInvoiceID).First(&existing).Error
		if err == nil {
			if existing.Status == p.Status {
				return nil
			}
			return s.db.Model(&billing.Payment{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"status":       p.Status,
					"amount_cents": p.AmountCents,
					"receipt_url":  p.ReceiptURL,
				}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return s.db.Create(p).Error
}

func (s *Store) PaymentsForProject(projectID string) ([]billing.Payment, error) {
	var out []billing.Payment
	if err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
