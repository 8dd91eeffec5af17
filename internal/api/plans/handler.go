package plans

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitelog-backend/database"
	"sitelog-backend/internal/domain/plans"
)

// ------------------------------
// GET /plans
// ------------------------------
func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.
		Where("active = ?", true).
		Order("price_cents ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}

// ------------------------------
// GET /storage-addons
// ------------------------------
func ListStorageAddons(c *gin.Context) {
	var addons []plans.StorageAddon
	if err := database.DB.
		Where("active = ?", true).
		Order("price_cents ASC").
		Find(&addons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load storage addons"})
		return
	}

	c.JSON(http.StatusOK, addons)
}

// ------------------------------
// POST /admin/plans
// ------------------------------
// Creates the plan when the id is new, otherwise overwrites the catalog
// row. Existing subscriptions keep the terms they were provisioned with.
func UpsertPlan(c *gin.Context) {
	var body plans.Plan
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == "" || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan payload"})
		return
	}
	if body.PriceCents < 0 || body.IncludedSeats < 0 || body.ExtraSeatPriceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices and seats must not be negative"})
		return
	}
	if body.StorageGB < 0 && body.StorageGB != plans.StorageUnlimited {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid storage_gb"})
		return
	}

	var existing plans.Plan
	err := database.DB.Where("id = ?", body.ID).First(&existing).Error
	if err != nil {
		if err := database.DB.Create(&body).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "created", "plan": body})
		return
	}

	existing.Name = body.Name
	existing.PriceCents = body.PriceCents
	existing.IncludedSeats = body.IncludedSeats
	existing.ExtraSeatPriceCents = body.ExtraSeatPriceCents
	existing.StorageGB = body.StorageGB
	existing.Active = body.Active

	if err := database.DB.Save(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated", "plan": existing})
}

// ------------------------------
// POST /admin/storage-addons
// ------------------------------
func UpsertStorageAddon(c *gin.Context) {
	var body plans.StorageAddon
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == "" || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid addon payload"})
		return
	}
	if body.StorageGB <= 0 || body.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Addon storage must be positive"})
		return
	}

	var existing plans.StorageAddon
	err := database.DB.Where("id = ?", body.ID).First(&existing).Error
	if err != nil {
		if err := database.DB.Create(&body).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create addon", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "created", "addon": body})
		return
	}

	existing.Name = body.Name
	existing.StorageGB = body.StorageGB
	existing.PriceCents = body.PriceCents
	existing.Active = body.Active

	if err := database.DB.Save(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update addon", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated", "addon": existing})
}
