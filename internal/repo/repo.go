// Package repo declares the storage contracts shared by the postgres, mongo and
// memory backends.
package repo

import (
	"context"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/domain/user"
)

type UserRepo interface {
	List(ctx context.Context) ([]user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	// CreateIfAbsent inserts u unless a user with the same email exists, in which
	// case it returns the existing record and created=false.
	CreateIfAbsent(ctx context.Context, u user.User) (out user.User, created bool, err error)
	ListByRole(ctx context.Context, role string) ([]user.User, error)
	ListVerified(ctx context.Context) ([]user.User, error)
	SetVerified(ctx context.Context, id string, verified bool) (user.User, error)
	SetRole(ctx context.Context, id, role string) (user.User, error)
	// PromoteToHR moves an employee to HR. A user that is already HR is
	// returned unchanged; any other role yields user.ErrRoleTransition.
	PromoteToHR(ctx context.Context, id string) (user.User, error)
	Fire(ctx context.Context, id string) (user.User, error)
	// RaiseSalary only writes when salary is greater than the stored one.
	RaiseSalary(ctx context.Context, id string, salary float64) (user.User, error)
}

type TaskRepo interface {
	List(ctx context.Context) ([]task.Task, error)
	ListByEmail(ctx context.Context, email string) ([]task.Task, error)
	Progress(ctx context.Context, filter task.ProgressFilter) ([]task.Task, error)
	Create(ctx context.Context, t task.Task) (task.Task, error)
	Update(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error)
	Delete(ctx context.Context, id string) error
}

type PayrollRepo interface {
	// CreateIfAbsent is an atomic insert keyed on (email, month, year).
	CreateIfAbsent(ctx context.Context, r payroll.Request) (payroll.Request, error)
	List(ctx context.Context) ([]payroll.Request, error)
	MarkPaid(ctx context.Context, id string, at time.Time) (payroll.Request, error)
	ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error)
	MarkPosted(ctx context.Context, id string) error
}

type PaymentRepo interface {
	// Page returns one page sorted by (year, month) ascending plus the total match count.
	Page(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error)
	ListByEmail(ctx context.Context, email string) ([]payment.Payment, error)
	// Upsert is idempotent on (email, year, month).
	Upsert(ctx context.Context, p payment.Payment) error
}

type MessageRepo interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]message.Message, error)
}

// Store bundles one backend's repositories with its connection lifecycle.
type Store struct {
	Users    UserRepo
	Tasks    TaskRepo
	Payroll  PayrollRepo
	Payments PaymentRepo
	Messages MessageRepo

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func NewStore(users UserRepo, tasks TaskRepo, payrolls PayrollRepo, payments PaymentRepo, messages MessageRepo, ping, close func(ctx context.Context) error) *Store {
	return &Store{
		Users:    users,
		Tasks:    tasks,
		Payroll:  payrolls,
		Payments: payments,
		Messages: messages,
		ping:     ping,
		close:    close,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
