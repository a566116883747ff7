package payment

import "errors"

// PageSize is the fixed page size of the payment history listing.
const PageSize = 5

var ErrInvalidPage = errors.New("page must be a positive integer")

// Payment is a historical salary payment. Month is the calendar month number 1..12.
type Payment struct {
	ID     string  `json:"_id"`
	Email  string  `json:"email"`
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

type Page struct {
	Payments   []Payment `json:"payments"`
	TotalPages int       `json:"totalPages"`
}

// TotalPages is ceil(total / PageSize).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}

	return (total + PageSize - 1) / PageSize
}

// Offset returns the number of documents to skip for a 1-based page.
func Offset(page int) (int, error) {
	if page < 1 {
		return 0, ErrInvalidPage
	}

	return (page - 1) * PageSize, nil
}
