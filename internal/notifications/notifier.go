package notifications

import (
	"context"
	"time"
)

// PaymentPostedInput describes a salary payment that reached the payments ledger.
type PaymentPostedInput struct {
	Email       string
	Name        string
	Month       string
	Year        int
	Amount      float64
	PaymentDate *time.Time
}

type Notifier interface {
	SendPaymentPosted(ctx context.Context, input PaymentPostedInput) error
}
