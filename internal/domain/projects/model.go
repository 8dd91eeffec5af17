package projects

import "time"

// Membership roles. Invitation flows live outside this service, so only the
// owner role is ever written here.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Project struct {
	ID      string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Number  string `json:"number"`
	Address string `json:"address"`
	City    string `json:"city"`
	Status  string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedBy uint `gorm:"index" json:"created_by"`

	// CheckoutSessionID links a project back to the checkout that paid for
	// it, so a retried provisioning event finds the row it already created.
	// Nil for free-tier projects and upgrade targets.
	CheckoutSessionID *string `gorm:"column:checkout_session_id;uniqueIndex:idx_projects_checkout_session_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProjectMember struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID string `gorm:"type:uuid;not null;uniqueIndex:idx_project_members_project_user,priority:1" json:"project_id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_project_members_project_user,priority:2;index" json:"user_id"`
	Role      string `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
}

// MemberProject is a project seen through one user's membership.
type MemberProject struct {
	Project
	Role string `json:"role"`
}
