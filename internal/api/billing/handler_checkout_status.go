package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /billing/checkout-status?session_id=...
// ------------------------------
// Polled by the success page after a paid checkout. Pending means the
// webhook has not landed yet; the client polls until the project id
// shows up.
func (h *Handler) GetCheckoutStatus(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
		return
	}

	sub, err := h.store.SubscriptionBySessionID(sessionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{"status": "pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "complete", "project_id": sub.ProjectID})
}
