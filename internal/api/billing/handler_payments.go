package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /projects/:id/payments
// ------------------------------
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	projectID := c.Param("id")

	payments, err := h.store.PaymentsForProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
