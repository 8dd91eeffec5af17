package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitelog-backend/internal/domain/billing"
)

// ------------------------------
// POST /billing/portal
// ------------------------------
// Plan changes, payment method updates and cancellations all happen in
// the provider's portal. We only mint the session.
func (h *Handler) CreateBillingPortal(c *gin.Context) {
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
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No billing customer yet (subscribe first)"})
		return
	}

	url, err := h.provider.CreatePortalSession(c.Request.Context(), billing.PortalParams{
		CustomerID: *user.StripeCustomerID,
		ReturnURL:  h.appURL + "/projects",
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
