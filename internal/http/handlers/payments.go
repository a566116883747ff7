package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct {
	payments repo.PaymentRepo
	timeout  time.Duration
}

func NewPaymentsHandler(payments repo.PaymentRepo, timeout time.Duration) *PaymentsHandler {
	return &PaymentsHandler{payments: payments, timeout: timeout}
}

// GET /payments?email=&page= returns one page of five, oldest first.
func (h *PaymentsHandler) Page(ctx *gin.Context) {
	email := strings.TrimSpace(ctx.Query("email"))
	if email == "" {
		RespondBadRequest(ctx, "Email is required", nil)
		return
	}

	page := 1
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			RespondBadRequest(ctx, "Invalid page", nil)
			return
		}
		page = n
	}

	offset, err := payment.Offset(page)
	if err != nil {
		respondStoreError(ctx, "fetching payments", err)
		return
	}

	out, ok := run(ctx, h.timeout, "fetching payments", func(c context.Context) (payment.Page, error) {
		items, total, err := h.payments.Page(c, email, offset, payment.PageSize)
		if err != nil {
			return payment.Page{}, err
		}
		if items == nil {
			items = []payment.Payment{}
		}
		return payment.Page{Payments: items, TotalPages: payment.TotalPages(total)}, nil
	})
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, out)
}

// GET /payments/:email returns the full history for HR.
func (h *PaymentsHandler) ListByEmail(ctx *gin.Context) {
	email := ctx.Param("email")

	items, ok := run(ctx, h.timeout, "fetching payments", func(c context.Context) ([]payment.Payment, error) {
		return h.payments.ListByEmail(c, email)
	})
	if !ok {
		return
	}

	if items == nil {
		items = []payment.Payment{}
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}
