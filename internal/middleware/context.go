package middleware

import "github.com/gin-gonic/gin"

// Keys under which AuthMiddleware stores the authenticated staff member.
const (
	StaffIDKey   = "staffID"
	StaffNameKey = "staffName"
	StaffRoleKey = "staffRole"
)

// StaffRole returns the role set by AuthMiddleware.
func StaffRole(c *gin.Context) (string, bool) {
	role := c.GetString(StaffRoleKey)
	return role, role != ""
}

// StaffName returns the name set by AuthMiddleware.
func StaffName(c *gin.Context) string {
	return c.GetString(StaffNameKey)
}
