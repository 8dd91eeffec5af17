package billing

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/projects"
)

type ProjectInput struct {
	Name    string `json:"name"`
	Number  string `json:"number"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type CheckoutRequest struct {
	PlanID           string       `json:"plan_id"`
	ExtraSeats       int          `json:"extra_seats"`
	StorageAddonIDs  []string     `json:"storage_addon_ids"`
	Project          ProjectInput `json:"project"`
	UpgradeProjectID string       `json:"upgrade_project_id"`
}

// ------------------------------
// POST /billing/checkout
// ------------------------------
// Free plans provision the project right here and return its id. Paid
// plans return a provider checkout URL; provisioning happens when the
// webhook confirms payment.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	user, err := h.store.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	if req.ExtraSeats < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "extra_seats must not be negative"})
		return
	}
	if req.UpgradeProjectID == "" && req.Project.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing project name"})
		return
	}

	plan, err := h.store.PlanByID(req.PlanID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown plan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan", "details": err.Error()})
		return
	}
	if !plan.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown plan"})
		return
	}

	addons, err := h.store.StorageAddonsByIDs(req.StorageAddonIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load storage addons", "details": err.Error()})
		return
	}
	if len(addons) != len(req.StorageAddonIDs) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown storage addon"})
		return
	}

	if req.UpgradeProjectID != "" {
		role, err := h.store.MemberRole(req.UpgradeProjectID, user.ID)
		if err != nil || role != projects.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can change its subscription"})
			return
		}

		// A project with a live paid subscription changes plans through
		// the billing portal, not through a second checkout.
		latest, err := h.store.LatestSubscriptionForProject(req.UpgradeProjectID)
		if err != nil && err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription", "details": err.Error()})
			return
		}
		if err == nil && latest.StripeSubscriptionID != nil && latest.Status != billing.StatusCanceled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project already has a paid subscription, use the billing portal"})
			return
		}
	}

	// Free plan: no provider involved, the project exists when we answer.
	if plan.PriceCents == 0 {
		if req.UpgradeProjectID != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot move a project to the free plan through checkout"})
			return
		}
		if req.ExtraSeats > 0 || len(req.StorageAddonIDs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Seats and storage addons require a paid plan"})
			return
		}

		project, err := h.store.ProvisionFreeProject(billing.CheckoutIntent{
			UserID:        user.ID,
			PlanID:        plan.ID,
			ProjectName:   req.Project.Name,
			ProjectNumber: req.Project.Number,
			Address:       req.Project.Address,
			City:          req.Project.City,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"project_id": project.ID})
		return
	}

	// ensure billing customer
	customerID := ""
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		customerID = *user.StripeCustomerID
	} else {
		created, err := h.provider.CreateCustomer(c.Request.Context(), user.Email, user.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create billing customer"})
			return
		}
		claimed, err := h.store.ClaimStripeCustomerID(user.ID, created)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store billing customer", "details": err.Error()})
			return
		}
		customerID = claimed
	}

	items := make([]billing.LineItem, 0, 2+len(addons))
	if plan.PriceCents > 0 {
		items = append(items, billing.LineItem{
			Name:            plan.Name + " plan",
			UnitAmountCents: plan.PriceCents,
			Quantity:        1,
		})
	}
	if req.ExtraSeats > 0 && plan.ExtraSeatPriceCents > 0 {
		items = append(items, billing.LineItem{
			Name:            "Extra seat",
			UnitAmountCents: plan.ExtraSeatPriceCents,
			Quantity:        int64(req.ExtraSeats),
		})
	}
	for _, addon := range addons {
		items = append(items, billing.LineItem{
			Name:            addon.Name,
			UnitAmountCents: addon.PriceCents,
			Quantity:        1,
		})
	}

	intent := billing.CheckoutIntent{
		UserID:           user.ID,
		PlanID:           plan.ID,
		ExtraSeats:       req.ExtraSeats,
		StorageAddonIDs:  req.StorageAddonIDs,
		ProjectName:      req.Project.Name,
		ProjectNumber:    req.Project.Number,
		Address:          req.Project.Address,
		City:             req.Project.City,
		UpgradeProjectID: req.UpgradeProjectID,
	}

	session, err := h.provider.CreateCheckoutSession(c.Request.Context(), billing.CheckoutParams{
		CustomerID:        customerID,
		ClientReferenceID: fmt.Sprint(user.ID),
		LineItems:         items,
		Metadata:          intent.Metadata(),
		SubscriptionMetadata: map[string]string{
			"user_id": fmt.Sprint(user.ID),
			"plan_id": plan.ID,
		},
		SuccessURL:     h.appURL + "/projects/pending?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      h.appURL + "/projects/new?canceled=1",
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "checkout_url": session.URL})
}
