package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/calendar"
	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const DefaultStoreTimeout = 3 * time.Second

// errorMapping lists the domain errors that are answered with something other
// than a 500.
var errorMapping = []struct {
	err     error
	status  int
	message string
}{
	{user.ErrNotFound, http.StatusNotFound, "User not found"},
	{task.ErrNotFound, http.StatusNotFound, "Task not found"},
	{payroll.ErrNotFound, http.StatusNotFound, "Payroll request not found"},
	{payroll.ErrAlreadyRequested, http.StatusBadRequest, "Payment request already exists for this month"},
	{user.ErrRoleTransition, http.StatusBadRequest, "Only employees can be promoted to HR"},
	{user.ErrSalaryNotIncreased, http.StatusBadRequest, "New salary must be greater than the current salary"},
	{calendar.ErrInvalidDate, http.StatusBadRequest, "Invalid date"},
	{payment.ErrInvalidPage, http.StatusBadRequest, "Invalid page"},
}

// respondStoreError maps err to the response. doing is the phrase used in the
// 500 body, e.g. "adding task".
func respondStoreError(ctx *gin.Context, doing string, err error) {
	for _, m := range errorMapping {
		if !errors.Is(err, m.err) {
			continue
		}

		if m.status == http.StatusNotFound {
			RespondNotFound(ctx, m.message)
		} else {
			RespondError(ctx, m.status, m.message, nil)
		}
		return
	}

	slog.Default().ErrorContext(ctx.Request.Context(), "store operation failed", "op", doing, "err", err)

	RespondInternal(ctx, "Error "+doing, err)
}

// run executes one store operation under the store timeout. When it fails the
// error response is already written and ok is false.
func run[T any](ctx *gin.Context, timeout time.Duration, doing string, fn func(context.Context) (T, error)) (out T, ok bool) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	c, cancel := context.WithTimeout(ctx.Request.Context(), timeout)
	defer cancel()

	out, err := fn(c)
	if err != nil {
		respondStoreError(ctx, doing, err)
		return out, false
	}

	return out, true
}
