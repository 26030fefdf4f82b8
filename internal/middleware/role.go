package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// RequireRole guards management routes. Owners pass every check.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, _ := c.Get(ContextRole)
		role, _ := roleVal.(string)

		if role == RoleOwner {
			c.Next()
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
	}
}
