package mongo

import (
	"time"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names inside the configured database.
const (
	UsersCollection    = "users"
	TasksCollection    = "Tasks"
	PayrollCollection  = "payroll"
	PaymentsCollection = "payments"
	MessagesCollection = "messages"
)

type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Role          string             `bson:"role"`
	Photo         string             `bson:"photo,omitempty"`
	Designation   string             `bson:"designation,omitempty"`
	BankAccountNo string             `bson:"bank_account_no,omitempty"`
	Salary        float64            `bson:"salary"`
	IsVerified    bool               `bson:"isVerified"`
	IsFired       bool               `bson:"isFired"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d userDoc) toDomain() user.User {
	return user.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Role:          d.Role,
		Photo:         d.Photo,
		Designation:   d.Designation,
		BankAccountNo: d.BankAccountNo,
		Salary:        d.Salary,
		IsVerified:    d.IsVerified,
		IsFired:       d.IsFired,
		CreatedAt:     d.CreatedAt,
	}
}

type taskDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Task      string             `bson:"task"`
	Hours     float64            `bson:"hours"`
	Date      string             `bson:"date"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name,omitempty"`
	Month     string             `bson:"month"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func taskDocFrom(t task.Task) taskDoc {
	return taskDoc{
		Task:      t.Task,
		Hours:     t.Hours,
		Date:      t.Date,
		Email:     t.Email,
		Name:      t.Name,
		Month:     t.Month,
		CreatedAt: t.CreatedAt,
	}
}

func (d taskDoc) toDomain() task.Task {
	return task.Task{
		ID:        d.ID.Hex(),
		Task:      d.Task,
		Hours:     d.Hours,
		Date:      d.Date,
		Email:     d.Email,
		Name:      d.Name,
		Month:     d.Month,
		CreatedAt: d.CreatedAt,
	}
}

type payrollDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Name        string             `bson:"name"`
	Amount      float64            `bson:"amount"`
	Month       string             `bson:"month"`
	Year        int                `bson:"year"`
	Status      string             `bson:"status"`
	IsPaid      bool               `bson:"isPaid"`
	PaymentDate *time.Time         `bson:"paymentDate"`
	Posted      bool               `bson:"posted"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d payrollDoc) toDomain() payroll.Request {
	return payroll.Request{
		ID:          d.ID.Hex(),
		Email:       d.Email,
		Name:        d.Name,
		Amount:      d.Amount,
		Month:       d.Month,
		Year:        d.Year,
		Status:      d.Status,
		IsPaid:      d.IsPaid,
		PaymentDate: d.PaymentDate,
		Posted:      d.Posted,
		CreatedAt:   d.CreatedAt,
	}
}

type paymentDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Email  string             `bson:"email"`
	Year   int                `bson:"year"`
	Month  int                `bson:"month"`
	Amount float64            `bson:"amount"`
}

func (d paymentDoc) toDomain() payment.Payment {
	return payment.Payment{
		ID:     d.ID.Hex(),
		Email:  d.Email,
		Year:   d.Year,
		Month:  d.Month,
		Amount: d.Amount,
	}
}

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Message   string             `bson:"message"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d messageDoc) toDomain() message.Message {
	return message.Message{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Message:   d.Message,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}
