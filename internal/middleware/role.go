package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole lets through staff whose role is one of allowed. It must run
// after AuthMiddleware.
func RequireRole(logger *zap.Logger, allowed ...string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	roles := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		roles[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := StaffRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}

		if _, ok := roles[role]; !ok {
			logger.Warn("role denied",
				zap.String("staff", StaffName(c)),
				zap.String("role", role),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
