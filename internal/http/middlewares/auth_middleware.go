package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/staffhub/internal/actorctx"
	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyToken(raw string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	roles RoleLookup
}

func NewAuthMiddleware(jwt TokenVerifier, roles RoleLookup) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, roles: roles}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}

// RequireAuth accepts only "Authorization: Bearer <token>" carrying a valid,
// unexpired token with an email claim.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			unauthorized(c)
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(CtxEmail, claims.Email)
		c.Request = c.Request.WithContext(actorctx.WithEmail(c.Request.Context(), claims.Email))

		c.Next()
	}
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
