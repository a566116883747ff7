package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 5: 1, 6: 2, 10: 2, 12: 3}

	for total, want := range cases {
		assert.Equal(t, want, TotalPages(total), "total=%d", total)
	}
}

func TestOffset(t *testing.T) {
	off, err := Offset(1)
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	off, err = Offset(3)
	require.NoError(t, err)
	assert.Equal(t, 10, off)

	_, err = Offset(0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}
