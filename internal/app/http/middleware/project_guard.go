package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProjectMemberStore resolves a user's role in a project. Satisfied by
// *store.Store.
type ProjectMemberStore interface {
	MemberRole(projectID string, userID uint) (string, error)
}

// RequireProjectMember guards /projects/:id routes. Non-members get 403;
// members continue with project_role set for handlers that care about
// ownership.
func RequireProjectMember(store ProjectMemberStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Param("id")
		userID := c.GetUint("user_id")
		if projectID == "" || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		role, err := store.MemberRole(projectID, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "You are not a member of this project",
			})
			return
		}

		c.Set("project_role", role)
		c.Next()
	}
}
