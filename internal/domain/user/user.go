package user

import (
	"errors"
	"time"
)

// Roles are compared case-sensitively everywhere.
const (
	RoleEmployee = "employee"
	RoleHR       = "HR"
	RoleAdmin    = "admin"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrSalaryNotIncreased = errors.New("salary must increase")
	// ErrRoleTransition is returned when a promotion would move a role backwards.
	ErrRoleTransition = errors.New("only employees can be promoted to HR")
)

type User struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Photo         string    `json:"photo,omitempty"`
	Designation   string    `json:"designation,omitempty"`
	BankAccountNo string    `json:"bank_account_no,omitempty"`
	Salary        float64   `json:"salary"`
	IsVerified    bool      `json:"isVerified"`
	IsFired       bool      `json:"isFired"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EmployeeSummary is the projection HR sees when listing employees.
type EmployeeSummary struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Designation   string  `json:"designation,omitempty"`
	BankAccountNo string  `json:"bank_account_no,omitempty"`
	Salary        float64 `json:"salary"`
	IsVerified    bool    `json:"isVerified"`
}

func (u User) Summary() EmployeeSummary {
	return EmployeeSummary{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Designation:   u.Designation,
		BankAccountNo: u.BankAccountNo,
		Salary:        u.Salary,
		IsVerified:    u.IsVerified,
	}
}

type SignUpRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Name          string  `json:"name" binding:"omitempty,max=120"`
	Photo         string  `json:"photo" binding:"omitempty,max=2048"`
	Designation   string  `json:"designation" binding:"omitempty,max=120"`
	BankAccountNo string  `json:"bank_account_no" binding:"omitempty,max=64"`
	Salary        float64 `json:"salary" binding:"omitempty,min=0"`
}

type VerifyRequest struct {
	IsVerified *bool `json:"isVerified" binding:"required"`
}

type SalaryRequest struct {
	Salary float64 `json:"salary" binding:"required,gt=0"`
}

// NewFromSignUp builds a fresh employee record. Role and flags are never taken from the payload.
func NewFromSignUp(req SignUpRequest) User {
	return User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          RoleEmployee,
		Photo:         req.Photo,
		Designation:   req.Designation,
		BankAccountNo: req.BankAccountNo,
		Salary:        req.Salary,
		CreatedAt:     time.Now().UTC(),
	}
}
