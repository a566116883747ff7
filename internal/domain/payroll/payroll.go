package payroll

import (
	"errors"
	"time"
)

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

var (
	ErrNotFound         = errors.New("payroll request not found")
	ErrAlreadyRequested = errors.New("payroll request already exists for this month")
)

// Request is an instruction to pay one employee for one month. At most one
// exists per (email, month, year).
type Request struct {
	ID          string     `json:"_id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Amount      float64    `json:"amount"`
	Month       string     `json:"month"`
	Year        int        `json:"year"`
	Status      string     `json:"status"`
	IsPaid      bool       `json:"isPaid"`
	PaymentDate *time.Time `json:"paymentDate"`
	Posted      bool       `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateRequest struct {
	Email  string  `json:"email" binding:"required,email"`
	Name   string  `json:"name" binding:"required,max=120"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Month  string  `json:"month" binding:"required,oneof=January February March April May June July August September October November December"`
	Year   int     `json:"year" binding:"required,min=1970,max=9999"`
}

func NewFromCreateRequest(req CreateRequest) Request {
	return Request{
		Email:     req.Email,
		Name:      req.Name,
		Amount:    req.Amount,
		Month:     req.Month,
		Year:      req.Year,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
