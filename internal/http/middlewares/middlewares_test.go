package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/staffhub/internal/actorctx"
	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoles struct {
	roles map[string]string
	err   error
	calls int
}

func (f *fakeRoles) RoleOf(_ context.Context, email string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[email]
	if !ok {
		return "", user.ErrNotFound
	}
	return role, nil
}

func newGuardedRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		email, _ := actorctx.EmailFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	r.GET("/hr", m.RequireAuth(), m.RequireRole(user.RoleHR), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	r := newGuardedRouter(NewAuthMiddleware(tokens, &fakeRoles{}))

	valid, err := tokens.IssueToken(map[string]any{"email": "jane@example.com"})
	require.NoError(t, err)

	other, err := auth.NewManager("other", time.Hour).IssueToken(map[string]any{"email": "jane@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad signature", "Bearer " + other, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"unauthorized access"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"email":"jane@example.com"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewManager("secret", time.Hour)
	roles := &fakeRoles{roles: map[string]string{
		"hr@example.com":  user.RoleHR,
		"emp@example.com": user.RoleEmployee,
		"adm@example.com": user.RoleAdmin,
	}}
	r := newGuardedRouter(NewAuthMiddleware(tokens, roles))

	token := func(email string) string {
		raw, err := tokens.IssueToken(map[string]any{"email": email})
		require.NoError(t, err)
		return raw
	}

	assert.Equal(t, http.StatusUnauthorized, do(r, "/hr", "").Code)
	assert.Zero(t, roles.calls, "role lookup must not run before auth")

	assert.Equal(t, http.StatusOK, do(r, "/hr", token("hr@example.com")).Code)

	w := do(r, "/hr", token("emp@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, w.Body.String())

	// admins are not HR
	assert.Equal(t, http.StatusForbidden, do(r, "/hr", token("adm@example.com")).Code)

	assert.Equal(t, http.StatusForbidden, do(r, "/hr", token("ghost@example.com")).Code)

	roles.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, do(r, "/hr", token("hr@example.com")).Code)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/jwt", rl.RateLimiterMiddleware(KeyByIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jwt", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusOK, post().Code)

	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	// one token back after half the window
	now = now.Add(31 * time.Second)
	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusTooManyRequests, post().Code)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusOK, post().Code)
}

func TestRequireJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequireJSON())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PATCH("/y", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPatch, "/y", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDEchoesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get(CtxRequestID)
		fromCtx, _ := actorctx.RequestIDFrom(c.Request.Context())
		assert.Equal(t, id, fromCtx)
		c.String(http.StatusOK, id.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
