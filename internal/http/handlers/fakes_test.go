package handlers_test

import (
	"context"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsersRepo struct {
	listFn           func(ctx context.Context) ([]user.User, error)
	getByEmailFn     func(ctx context.Context, email string) (user.User, error)
	createIfAbsentFn func(ctx context.Context, u user.User) (user.User, bool, error)
	listByRoleFn     func(ctx context.Context, role string) ([]user.User, error)
	listVerifiedFn   func(ctx context.Context) ([]user.User, error)
	setVerifiedFn    func(ctx context.Context, id string, verified bool) (user.User, error)
	setRoleFn        func(ctx context.Context, id, role string) (user.User, error)
	promoteToHRFn    func(ctx context.Context, id string) (user.User, error)
	fireFn           func(ctx context.Context, id string) (user.User, error)
	raiseSalaryFn    func(ctx context.Context, id string, salary float64) (user.User, error)
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]user.User, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []user.User{}, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) CreateIfAbsent(ctx context.Context, u user.User) (user.User, bool, error) {
	if f.createIfAbsentFn != nil {
		return f.createIfAbsentFn(ctx, u)
	}
	return u, true, nil
}

func (f *fakeUsersRepo) ListByRole(ctx context.Context, role string) ([]user.User, error) {
	if f.listByRoleFn != nil {
		return f.listByRoleFn(ctx, role)
	}
	return []user.User{}, nil
}

func (f *fakeUsersRepo) ListVerified(ctx context.Context) ([]user.User, error) {
	if f.listVerifiedFn != nil {
		return f.listVerifiedFn(ctx)
	}
	return []user.User{}, nil
}

func (f *fakeUsersRepo) SetVerified(ctx context.Context, id string, verified bool) (user.User, error) {
	if f.setVerifiedFn != nil {
		return f.setVerifiedFn(ctx, id, verified)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) SetRole(ctx context.Context, id, role string) (user.User, error) {
	if f.setRoleFn != nil {
		return f.setRoleFn(ctx, id, role)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) PromoteToHR(ctx context.Context, id string) (user.User, error) {
	if f.promoteToHRFn != nil {
		return f.promoteToHRFn(ctx, id)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) Fire(ctx context.Context, id string) (user.User, error) {
	if f.fireFn != nil {
		return f.fireFn(ctx, id)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) RaiseSalary(ctx context.Context, id string, salary float64) (user.User, error) {
	if f.raiseSalaryFn != nil {
		return f.raiseSalaryFn(ctx, id, salary)
	}
	return user.User{}, user.ErrNotFound
}

type fakeTasksRepo struct {
	listFn        func(ctx context.Context) ([]task.Task, error)
	listByEmailFn func(ctx context.Context, email string) ([]task.Task, error)
	progressFn    func(ctx context.Context, f task.ProgressFilter) ([]task.Task, error)
	createFn      func(ctx context.Context, t task.Task) (task.Task, error)
	updateFn      func(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeTasksRepo) List(ctx context.Context) ([]task.Task, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []task.Task{}, nil
}

func (f *fakeTasksRepo) ListByEmail(ctx context.Context, email string) ([]task.Task, error) {
	if f.listByEmailFn != nil {
		return f.listByEmailFn(ctx, email)
	}
	return []task.Task{}, nil
}

func (f *fakeTasksRepo) Progress(ctx context.Context, filter task.ProgressFilter) ([]task.Task, error) {
	if f.progressFn != nil {
		return f.progressFn(ctx, filter)
	}
	return []task.Task{}, nil
}

func (f *fakeTasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return t, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return task.Task{}, task.ErrNotFound
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakePayrollRepo struct {
	createFn       func(ctx context.Context, r payroll.Request) (payroll.Request, error)
	listFn         func(ctx context.Context) ([]payroll.Request, error)
	markPaidFn     func(ctx context.Context, id string, at time.Time) (payroll.Request, error)
	listUnpostedFn func(ctx context.Context, limit int) ([]payroll.Request, error)
	markPostedFn   func(ctx context.Context, id string) error
}

func (f *fakePayrollRepo) CreateIfAbsent(ctx context.Context, r payroll.Request) (payroll.Request, error) {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return r, nil
}

func (f *fakePayrollRepo) List(ctx context.Context) ([]payroll.Request, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []payroll.Request{}, nil
}

func (f *fakePayrollRepo) MarkPaid(ctx context.Context, id string, at time.Time) (payroll.Request, error) {
	if f.markPaidFn != nil {
		return f.markPaidFn(ctx, id, at)
	}
	return payroll.Request{}, payroll.ErrNotFound
}

func (f *fakePayrollRepo) ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error) {
	if f.listUnpostedFn != nil {
		return f.listUnpostedFn(ctx, limit)
	}
	return []payroll.Request{}, nil
}

func (f *fakePayrollRepo) MarkPosted(ctx context.Context, id string) error {
	if f.markPostedFn != nil {
		return f.markPostedFn(ctx, id)
	}
	return nil
}

type fakePaymentsRepo struct {
	pageFn        func(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error)
	listByEmailFn func(ctx context.Context, email string) ([]payment.Payment, error)
}

func (f *fakePaymentsRepo) Page(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error) {
	if f.pageFn != nil {
		return f.pageFn(ctx, email, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakePaymentsRepo) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	if f.listByEmailFn != nil {
		return f.listByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakePaymentsRepo) Upsert(ctx context.Context, p payment.Payment) error {
	return nil
}

type fakeMessagesRepo struct {
	createFn func(ctx context.Context, m message.Message) (message.Message, error)
	listFn   func(ctx context.Context) ([]message.Message, error)
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m message.Message) (message.Message, error) {
	if f.createFn != nil {
		return f.createFn(ctx, m)
	}
	m.ID = "m1"
	return m, nil
}

func (f *fakeMessagesRepo) List(ctx context.Context) ([]message.Message, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []message.Message{}, nil
}

type fakeForgetter struct {
	forgotten []string
}

func (f *fakeForgetter) Forget(_ context.Context, email string) {
	f.forgotten = append(f.forgotten, email)
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}
