package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payroll repo.PayrollRepo
	timeout time.Duration
	now     func() time.Time
}

func NewPayrollHandler(payroll repo.PayrollRepo, timeout time.Duration) *PayrollHandler {
	return &PayrollHandler{payroll: payroll, timeout: timeout, now: time.Now}
}

// POST /payroll: at most one request per employee and month.
func (h *PayrollHandler) Create(ctx *gin.Context) {
	var req payroll.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	created, ok := run(ctx, h.timeout, "creating payment request", func(c context.Context) (payroll.Request, error) {
		return h.payroll.CreateIfAbsent(c, payroll.NewFromCreateRequest(req))
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, created)
}

// GET /payroll
func (h *PayrollHandler) List(ctx *gin.Context) {
	items, ok := run(ctx, h.timeout, "fetching payroll requests", h.payroll.List)
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

// PATCH /payroll/:id/pay
func (h *PayrollHandler) Pay(ctx *gin.Context) {
	id := ctx.Param("id")
	at := h.now().UTC()

	paid, ok := run(ctx, h.timeout, "marking payment as paid", func(c context.Context) (payroll.Request, error) {
		return h.payroll.MarkPaid(c, id, at)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":     "Payment marked as paid",
		"paymentDate": paid.PaymentDate,
	})
}
