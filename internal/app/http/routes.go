package routes

import (
	adminapi "sitelog-backend/internal/api/admin"
	authapi "sitelog-backend/internal/api/auth"
	"sitelog-backend/internal/api/billing"
	"sitelog-backend/internal/api/plans"
	projectsapi "sitelog-backend/internal/api/projects"
	stripewebhooks "sitelog-backend/internal/api/stripewebhook"
	"sitelog-backend/internal/api/users"
	"sitelog-backend/internal/app/http/middleware"
	"sitelog-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired handlers. main builds them once; nothing in the
// routing layer reaches for globals.
type Deps struct {
	Store    *store.Store
	Billing  *billing.Handler
	Webhook  *stripewebhooks.Handler
	Projects *projectsapi.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Webhook gets the raw body, no sanitizer: the signature is the auth.
	r.POST("/webhook", d.Webhook.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/storage-addons", plans.ListStorageAddons)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/billing/checkout", d.Billing.CreateCheckout)
	auth.GET("/billing/checkout-status", d.Billing.GetCheckoutStatus)
	auth.POST("/billing/portal", d.Billing.CreateBillingPortal)

	auth.GET("/projects", d.Projects.ListProjects)

	// Project-scoped, members only
	proj := auth.Group("/projects/:id")
	proj.Use(middleware.RequireProjectMember(d.Store))
	proj.GET("", d.Projects.GetProject)
	proj.GET("/entitlements", d.Billing.GetProjectEntitlements)
	proj.GET("/payments", d.Billing.GetPaymentHistory)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/plans", plans.UpsertPlan)
	admin.POST("/storage-addons", plans.UpsertStorageAddon)
}
