package task

import (
	"errors"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/calendar"
)

var ErrNotFound = errors.New("task not found")

// Task is one work-log entry. Month is derived from Date once, at creation.
type Task struct {
	ID        string    `json:"_id"`
	Task      string    `json:"task"`
	Hours     float64   `json:"hours"`
	Date      string    `json:"date"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Task  string  `json:"task" binding:"required,max=500"`
	Hours float64 `json:"hours" binding:"required,gt=0"`
	Date  string  `json:"date" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Name  string  `json:"name" binding:"omitempty,max=120"`
}

// a full replacement of the editable fields; month stays as derived at creation.
type UpdateRequest struct {
	Task  string  `json:"task" binding:"required,max=500"`
	Hours float64 `json:"hours" binding:"required,gt=0"`
	Date  string  `json:"date" binding:"required"`
}

// ProgressFilter narrows tasks for HR review. Empty fields match everything.
type ProgressFilter struct {
	Name  string
	Month string
}

func NewFromCreateRequest(req CreateRequest) (Task, error) {
	month, err := calendar.MonthName(req.Date)
	if err != nil {
		return Task{}, err
	}

	return Task{
		Task:      req.Task,
		Hours:     req.Hours,
		Date:      req.Date,
		Email:     req.Email,
		Name:      req.Name,
		Month:     month,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateUpdate checks the new date parses, without touching the stored month.
func ValidateUpdate(req UpdateRequest) error {
	_, err := calendar.ParseDate(req.Date)
	return err
}
