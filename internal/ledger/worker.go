// Package ledger copies paid payroll requests into the payment history that
// GET /payments pages over.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/geocoder89/staffhub/internal/domain/calendar"
	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/notifications"
	"github.com/geocoder89/staffhub/internal/observability"
)

// errUnpostable marks a request whose stored fields cannot form a payment.
var errUnpostable = errors.New("unpostable payroll request")

type PayrollSource interface {
	ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error)
	MarkPosted(ctx context.Context, id string) error
}

type PaymentSink interface {
	Upsert(ctx context.Context, p payment.Payment) error
}

type Config struct {
	PollInterval time.Duration
	BatchSize    int
	// OpTimeout bounds each store call
	OpTimeout time.Duration
}

type Worker struct {
	cfg      Config
	payroll  PayrollSource
	payments PaymentSink
	prom     *observability.Prom
	log      *slog.Logger
	notifier notifications.Notifier
	retry    backoff.BackOff

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, payroll PayrollSource, payments PaymentSink, prom *observability.Prom, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &Worker{
		cfg:      cfg,
		payroll:  payroll,
		payments: payments,
		prom:     prom,
		log:      log,
		retry:    newRetrySchedule(),
	}
}

// WithNotifier sends a payslip notice for every posted payment. Notice
// failures are logged and never block posting.
func (w *Worker) WithNotifier(n notifications.Notifier) *Worker {
	w.notifier = n
	return w
}

// Run polls until ctx is cancelled. A failed batch is retried on the backoff
// schedule; a clean batch resets it.
func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	wait := time.Duration(0)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("ledger worker received shutdown signal")
			return nil
		case <-time.After(wait):
		}

		start := time.Now()
		posted, err := w.PostBatch(ctx)
		w.observe(posted, err, time.Since(start))

		switch {
		case err != nil && ctx.Err() == nil:
			wait = w.retry.NextBackOff()
			w.log.Error("ledger batch failed", "err", err, "posted", posted, "retry_in", wait.String())
		case posted == w.cfg.BatchSize:
			// more may be waiting
			w.retry.Reset()
			wait = 0
		default:
			w.retry.Reset()
			wait = w.cfg.PollInterval
		}
	}
}

// PostBatch posts up to BatchSize paid requests and returns how many it posted.
func (w *Worker) PostBatch(ctx context.Context) (int, error) {
	listCtx, cancel := context.WithTimeout(ctx, w.cfg.OpTimeout)
	pending, err := w.payroll.ListUnposted(listCtx, w.cfg.BatchSize)
	cancel()

	if err != nil {
		return 0, fmt.Errorf("list unposted: %w", err)
	}

	posted := 0

	for _, req := range pending {
		err := w.post(ctx, req)
		if errors.Is(err, errUnpostable) {
			if err := w.skip(ctx, req, err); err != nil {
				return posted, err
			}
			continue
		}
		if err != nil {
			return posted, err
		}
		posted++
	}

	if posted > 0 {
		w.log.Info("ledger batch posted", "count", posted)
	}

	return posted, nil
}

func (w *Worker) post(ctx context.Context, req payroll.Request) error {
	month, ok := calendar.MonthNumber(req.Month)
	if !ok {
		return fmt.Errorf("payroll %s: %w: unknown month %q", req.ID, errUnpostable, req.Month)
	}

	opCtx, cancel := context.WithTimeout(ctx, w.cfg.OpTimeout)
	defer cancel()

	// Upsert first: a crash between the two writes re-posts the same key,
	// which the unique (email, year, month) makes harmless.
	err := w.payments.Upsert(opCtx, payment.Payment{
		Email:  req.Email,
		Year:   req.Year,
		Month:  month,
		Amount: req.Amount,
	})
	if err != nil {
		return fmt.Errorf("upsert payment for %s: %w", req.ID, err)
	}

	if err := w.payroll.MarkPosted(opCtx, req.ID); err != nil {
		return fmt.Errorf("mark posted %s: %w", req.ID, err)
	}

	w.notify(ctx, req)

	return nil
}

// skip retires a request that can never become a payment so it stops
// heading every batch.
func (w *Worker) skip(ctx context.Context, req payroll.Request, cause error) error {
	w.log.Error("ledger skipped payroll request", "payroll_id", req.ID, "email", req.Email, "err", cause)

	if w.prom != nil {
		w.prom.LedgerSkipped.Inc()
	}

	opCtx, cancel := context.WithTimeout(ctx, w.cfg.OpTimeout)
	defer cancel()

	if err := w.payroll.MarkPosted(opCtx, req.ID); err != nil {
		return fmt.Errorf("retire %s: %w", req.ID, err)
	}

	return nil
}

func (w *Worker) notify(ctx context.Context, req payroll.Request) {
	if w.notifier == nil {
		return
	}

	err := w.notifier.SendPaymentPosted(ctx, notifications.PaymentPostedInput{
		Email:       req.Email,
		Name:        req.Name,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		w.log.Warn("payment notice not sent", "payroll_id", req.ID, "email", req.Email, "err", err)
	}
}

func (w *Worker) observe(posted int, err error, d time.Duration) {
	if w.prom == nil {
		return
	}

	w.prom.LedgerPosted.Add(float64(posted))
	w.prom.LedgerBatchDuration.Observe(d.Seconds())

	if err != nil {
		w.prom.LedgerFailures.Inc()
	}
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

func (w *Worker) Ready() bool {
	w.readyMu.RLock()
	defer w.readyMu.RUnlock()
	return w.ready
}
