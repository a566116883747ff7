package task

import (
	"testing"

	"github.com/geocoder89/staffhub/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromCreateRequestDerivesMonth(t *testing.T) {
	got, err := NewFromCreateRequest(CreateRequest{
		Task:  "Sales",
		Hours: 4,
		Date:  "2024-03-15",
		Email: "jane@example.com",
		Name:  "Jane",
	})
	require.NoError(t, err)

	assert.Equal(t, "March", got.Month)
	assert.Equal(t, "2024-03-15", got.Date)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestNewFromCreateRequestInvalidDate(t *testing.T) {
	_, err := NewFromCreateRequest(CreateRequest{Task: "x", Hours: 1, Date: "soon", Email: "a@b.co"})
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestValidateUpdate(t *testing.T) {
	assert.NoError(t, ValidateUpdate(UpdateRequest{Task: "x", Hours: 1, Date: "2024-04-01"}))
	assert.ErrorIs(t, ValidateUpdate(UpdateRequest{Task: "x", Hours: 1, Date: "nope"}), calendar.ErrInvalidDate)
}
