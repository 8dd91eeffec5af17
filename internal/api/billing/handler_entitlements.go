package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/plans"
)

// ------------------------------
// GET /projects/:id/entitlements
// ------------------------------
// The allowance clients enforce: seats and storage from the newest
// subscription row, whatever its status.
func (h *Handler) GetProjectEntitlements(c *gin.Context) {
	projectID := c.Param("id")

	sub, err := h.store.LatestSubscriptionForProject(projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project has no subscription"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription", "details": err.Error()})
		return
	}

	plan, err := h.store.PlanByID(sub.PlanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan", "details": err.Error()})
		return
	}

	ent := billing.ComputeEntitlements(plan, sub.ExtraSeats, sub.ExtraStorageGB)

	c.JSON(http.StatusOK, gin.H{
		"project_id":        sub.ProjectID,
		"plan_id":           sub.PlanID,
		"status":            sub.Status,
		"seats":             ent.Seats,
		"storage_gb":        ent.StorageGB,
		"storage_unlimited": ent.StorageGB == plans.StorageUnlimited,
	})
}
