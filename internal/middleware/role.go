package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movietheater/internal/pkg/response"
)

// RequireRoles ensures the authenticated user holds one of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles("admin")
}

// StaffOnly requires the admin or employee role.
func StaffOnly() gin.HandlerFunc {
	return RequireRoles("admin", "employee")
}
