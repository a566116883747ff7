package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
}

// RequireRole must be chained after RequireAuth. The role is read from the
// store on every request (through the role cache), never from the token.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := EmailFromContext(c)
		if !ok {
			unauthorized(c)
			return
		}

		role, err := m.roles.RoleOf(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				forbidden(c)
				return
			}

			slog.Default().ErrorContext(c.Request.Context(), "role lookup failed", "email", email, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Error checking role",
				"error":   err.Error(),
			})
			return
		}

		if role != required {
			forbidden(c)
			return
		}

		c.Next()
	}
}
