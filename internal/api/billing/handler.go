package billing

import (
	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/plans"
	"sitelog-backend/internal/domain/projects"
	"sitelog-backend/internal/domain/users"
)

// Store is the slice of the persistence layer the billing handlers use.
// *store.Store satisfies it; tests plug in fakes.
type Store interface {
	UserByID(id uint) (*users.User, error)
	ClaimStripeCustomerID(userID uint, customerID string) (string, error)

	PlanByID(id string) (*plans.Plan, error)
	StorageAddonsByIDs(ids []string) ([]plans.StorageAddon, error)

	ProjectByID(id string) (*projects.Project, error)
	MemberRole(projectID string, userID uint) (string, error)

	SubscriptionBySessionID(sessionID string) (*billing.ProjectSubscription, error)
	LatestSubscriptionForProject(projectID string) (*billing.ProjectSubscription, error)
	ProvisionFreeProject(intent billing.CheckoutIntent) (*projects.Project, error)
	PaymentsForProject(projectID string) ([]billing.Payment, error)
}

type Handler struct {
	store    Store
	provider billing.PaymentProvider
	appURL   string
}

func NewHandler(store Store, provider billing.PaymentProvider, appURL string) *Handler {
	return &Handler{
		store:    store,
		provider: provider,
		appURL:   appURL,
	}
}
