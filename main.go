package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sitelog-backend/config"
	"sitelog-backend/database"
	billingapi "sitelog-backend/internal/api/billing"
	projectsapi "sitelog-backend/internal/api/projects"
	stripewebhooks "sitelog-backend/internal/api/stripewebhook"
	routes "sitelog-backend/internal/app/http"
	stripeinfra "sitelog-backend/internal/infra/stripe"
	"sitelog-backend/internal/store"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	database.SeedCatalog()

	st := store.New(database.DB)
	provider := stripeinfra.NewProvider(config.STRIPE_SECRET_KEY, config.CURRENCY)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:    st,
		Billing:  billingapi.NewHandler(st, provider, config.APP_URL),
		Webhook:  stripewebhooks.NewHandler(st, config.STRIPE_WEBHOOK_SECRET),
		Projects: projectsapi.NewHandler(st),
	})

	r.Run(":" + config.PORT)
}
