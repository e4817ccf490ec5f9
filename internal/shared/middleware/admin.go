package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bestiary-backend/internal/domains/user/model"
	"bestiary-backend/internal/shared/response"
)

// RequireAdmin gates creature-mutation endpoints: the caller must be
// authenticated (AuthMiddleware ran first) and carry the Admin role.
// Role failures are 403, distinct from the 401s AuthMiddleware produces.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRoleKey)
		if !exists {
			response.Error(c, http.StatusForbidden, "access forbidden: admins only")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != model.RoleAdmin {
			response.Error(c, http.StatusForbidden, "access forbidden: admins only")
			c.Abort()
			return
		}

		c.Next()
	}
}
