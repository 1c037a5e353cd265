package middleware

import (
	"net/http"

	"clinicore/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after JWTAuthMiddleware.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleOf(c)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions for this operation",
		})
	}
}
