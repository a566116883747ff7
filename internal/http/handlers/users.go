package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
)

// RoleForgetter drops a cached role after the stored one changes.
type RoleForgetter interface {
	Forget(ctx context.Context, email string)
}

type UsersHandler struct {
	users   repo.UserRepo
	roles   RoleForgetter
	timeout time.Duration
}

func NewUsersHandler(users repo.UserRepo, roles RoleForgetter, timeout time.Duration) *UsersHandler {
	return &UsersHandler{users: users, roles: roles, timeout: timeout}
}

// GET /users
func (h *UsersHandler) List(ctx *gin.Context) {
	users, ok := run(ctx, h.timeout, "fetching users", h.users.List)
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, users)
}

// POST /users is idempotent on email: a repeat signup reports the existing
// user instead of creating a second one.
func (h *UsersHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	type result struct {
		u       user.User
		created bool
	}

	res, ok := run(ctx, h.timeout, "creating user", func(c context.Context) (result, error) {
		u, created, err := h.users.CreateIfAbsent(c, user.NewFromSignUp(req))
		return result{u, created}, err
	})
	if !ok {
		return
	}

	if !res.created {
		ctx.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": res.u.ID})
}

// GET /employees/:email
func (h *UsersHandler) GetByEmail(ctx *gin.Context) {
	email := ctx.Param("email")

	u, ok := run(ctx, h.timeout, "fetching user", func(c context.Context) (user.User, error) {
		return h.users.GetByEmail(c, email)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// GET /employees lists plain employees for HR.
func (h *UsersHandler) ListEmployees(ctx *gin.Context) {
	users, ok := run(ctx, h.timeout, "fetching employees", func(c context.Context) ([]user.User, error) {
		return h.users.ListByRole(c, user.RoleEmployee)
	})
	if !ok {
		return
	}

	out := make([]user.EmployeeSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}

	RespondJSONWithETag(ctx, http.StatusOK, out)
}

// GET /verified-employees
func (h *UsersHandler) ListVerified(ctx *gin.Context) {
	users, ok := run(ctx, h.timeout, "fetching verified employees", h.users.ListVerified)
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, users)
}

// PUT /employees/:id/verify
func (h *UsersHandler) Verify(ctx *gin.Context) {
	var req user.VerifyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	u, ok := run(ctx, h.timeout, "updating verification status", func(c context.Context) (user.User, error) {
		return h.users.SetVerified(c, id, *req.IsVerified)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"_id": u.ID, "isVerified": u.IsVerified})
}

// PATCH /employees/:id/make-hr
func (h *UsersHandler) MakeHR(ctx *gin.Context) {
	id := ctx.Param("id")

	u, ok := run(ctx, h.timeout, "promoting employee", func(c context.Context) (user.User, error) {
		return h.users.PromoteToHR(c, id)
	})
	if !ok {
		return
	}

	h.forget(ctx, u.Email)

	ctx.JSON(http.StatusOK, gin.H{"_id": u.ID, "role": u.Role})
}

// PATCH /employees/:id/fire
func (h *UsersHandler) Fire(ctx *gin.Context) {
	id := ctx.Param("id")

	u, ok := run(ctx, h.timeout, "firing employee", func(c context.Context) (user.User, error) {
		return h.users.Fire(c, id)
	})
	if !ok {
		return
	}

	h.forget(ctx, u.Email)

	ctx.JSON(http.StatusOK, gin.H{"_id": u.ID, "isFired": u.IsFired})
}

// PATCH /employees/:id/salary
func (h *UsersHandler) UpdateSalary(ctx *gin.Context) {
	var req user.SalaryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	u, ok := run(ctx, h.timeout, "updating salary", func(c context.Context) (user.User, error) {
		return h.users.RaiseSalary(c, id, req.Salary)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"_id": u.ID, "salary": u.Salary})
}

func (h *UsersHandler) forget(ctx *gin.Context, email string) {
	if h.roles != nil && email != "" {
		h.roles.Forget(ctx.Request.Context(), email)
	}
}
