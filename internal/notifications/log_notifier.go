package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier writes payslip notices to the structured log. It stands in for
// a mail provider until one is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}

	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendPaymentPosted(ctx context.Context, in PaymentPostedInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	attrs := []any{
		"email", in.Email,
		"name", in.Name,
		"month", in.Month,
		"year", in.Year,
		"amount", in.Amount,
	}
	if in.PaymentDate != nil {
		attrs = append(attrs, "payment_date", in.PaymentDate.UTC())
	}

	n.log.InfoContext(ctx, "notification.payment_posted", attrs...)
	return nil
}
