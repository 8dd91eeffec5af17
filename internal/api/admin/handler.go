package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sitelog-backend/database"
	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/projects"
	"sitelog-backend/internal/domain/users"
)

type AdminUser struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Lastname         string  `json:"lastname"`
	Company          string  `json:"company,omitempty"`
	Tel              string  `json:"tel"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	IsVerified       bool    `json:"is_verified"`
	StripeCustomerID *string `json:"stripe_customer_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type AdminPayment struct {
	ID          uint    `json:"id"`
	ProjectID   string  `json:"project_id"`
	ProjectName *string `json:"project_name,omitempty"`
	AmountCents int64   `json:"amount_cents"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	InvoiceID   *string `json:"invoice_id,omitempty"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers         int            `json:"total_users"`
	TotalProjects      int            `json:"total_projects"`
	TotalRevenueCents  int64          `json:"total_revenue_cents"`
	RecentRevenueCents int64          `json:"recent_revenue_cents"`
	ProjectsPerPlan    map[string]int `json:"projects_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Order("created_at DESC").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		adminUsers = append(adminUsers, AdminUser{
			ID:               u.ID,
			Name:             u.Name,
			Lastname:         u.Lastname,
			Company:          u.Company,
			Tel:              u.Tel,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			StripeCustomerID: u.StripeCustomerID,
			CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayments(c *gin.Context) {
	type paymentRow struct {
		ID              uint
		ProjectID       string
		AmountCents     int64
		Currency        string
		Status          string
		StripeInvoiceID *string
		ReceiptURL      *string
		CreatedAt       time.Time
		ProjectName     *string
	}

	var rows []paymentRow
	err := database.DB.
		Table("payments").
		Select("payments.*, projects.name AS project_name").
		Joins("LEFT JOIN projects ON projects.id = payments.project_id").
		Order("payments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range rows {
		result = append(result, AdminPayment{
			ID:          p.ID,
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			AmountCents: p.AmountCents,
			Currency:    p.Currency,
			Status:      p.Status,
			InvoiceID:   p.StripeInvoiceID,
			ReceiptURL:  p.ReceiptURL,
			CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalProjects int64
	var totalRevenue int64
	var recentRevenue int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&projects.Project{}).Count(&totalProjects)
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.PaymentSucceeded).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", billing.PaymentSucceeded, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalProjects = int(totalProjects)
	stats.TotalRevenueCents = totalRevenue
	stats.RecentRevenueCents = recentRevenue

	// Count each project once, under its newest subscription's plan.
	type PlanCount struct {
		Name  *string
		Count int
	}
	var counts []PlanCount

	database.DB.Raw(`
		SELECT plans.name, COUNT(*) AS count
		FROM (
			SELECT DISTINCT ON (project_id) project_id, plan_id
			FROM project_subscriptions
			ORDER BY project_id, created_at DESC
		) latest
		JOIN plans ON plans.id = latest.plan_id
		GROUP BY plans.name
	`).Scan(&counts)

	stats.ProjectsPerPlan = map[string]int{}
	for _, pc := range counts {
		name := "No Plan"
		if pc.Name != nil {
			name = *pc.Name
		}
		stats.ProjectsPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var memberships []projects.MemberProject
	if err := database.DB.Model(&projects.Project{}).
		Select("projects.*, project_members.role").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", user.ID).
		Scan(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": AdminUser{
			ID:               user.ID,
			Name:             user.Name,
			Lastname:         user.Lastname,
			Company:          user.Company,
			Tel:              user.Tel,
			Email:            user.Email,
			Role:             user.Role,
			IsVerified:       user.IsVerified,
			StripeCustomerID: user.StripeCustomerID,
			CreatedAt:        user.CreatedAt.Format("2006-01-02 15:04"),
		},
		"projects": memberships,
	})
}
