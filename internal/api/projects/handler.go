package projects

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sitelog-backend/internal/domain/access"
	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/plans"
	"sitelog-backend/internal/domain/projects"
)

type Store interface {
	ProjectsForUser(userID uint) ([]projects.MemberProject, error)
	ProjectByID(id string) (*projects.Project, error)
	LatestSubscriptionForProject(projectID string) (*billing.ProjectSubscription, error)
	PlanByID(id string) (*plans.Plan, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// ------------------------------
// GET /projects
// ------------------------------
func (h *Handler) ListProjects(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	memberships, err := h.store.ProjectsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}

	now := time.Now()
	out := make([]ProjectSummary, 0, len(memberships))
	for _, m := range memberships {
		summary := ProjectSummary{
			ID:     m.ID,
			Name:   m.Name,
			Number: m.Number,
			City:   m.City,
			Role:   m.Role,
			Access: access.StateLocked,
		}

		sub, err := h.store.LatestSubscriptionForProject(m.ID)
		if err == nil {
			summary.PlanID = sub.PlanID
			summary.Access = access.ComputeProjectAccessState(now, sub)
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
			return
		}

		out = append(out, summary)
	}

	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /projects/:id
// ------------------------------
// Membership was already checked by the route middleware.
func (h *Handler) GetProject(c *gin.Context) {
	projectID := c.Param("id")

	project, err := h.store.ProjectByID(projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project", "details": err.Error()})
		return
	}

	detail := ProjectDetail{
		ID:        project.ID,
		Name:      project.Name,
		Number:    project.Number,
		Address:   project.Address,
		City:      project.City,
		Role:      c.GetString("project_role"),
		CreatedAt: project.CreatedAt,
	}

	sub, err := h.store.LatestSubscriptionForProject(projectID)
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription", "details": err.Error()})
		return
	}

	now := time.Now()
	if err == nil {
		info := &SubscriptionInfo{
			PlanID:     sub.PlanID,
			Status:     sub.Status,
			ExtraSeats: sub.ExtraSeats,
			PeriodEnd:  sub.PeriodEnd,
		}
		if plan, perr := h.store.PlanByID(sub.PlanID); perr == nil {
			info.PlanName = plan.Name
		}
		detail.Subscription = info
		detail.Access = access.ComputePolicy(now, sub)
	} else {
		detail.Access = access.ComputePolicy(now, nil)
	}

	c.JSON(http.StatusOK, detail)
}
