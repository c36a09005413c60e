package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("update stock: %w", Invalid("not enough stock"))

	assert.True(t, errors.Is(err, ErrInvalid))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "not enough stock", Message(err))
	assert.Equal(t, "", Message(errors.New("boom")))
}

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		in   error
		kind error
		msg  string
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound, "customer not found"},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound, "customer not found"},
		{"unique", &pq.Error{Code: "23505"}, ErrConflict, "customer already exists"},
		{"fk", &pq.Error{Code: "23503"}, ErrConflict, "customer is referenced by other records"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDB(tt.in, "customer")
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.msg, err.Error())
		})
	}

	assert.NoError(t, FromDB(nil, "x"))
	other := errors.New("connection reset")
	assert.Same(t, other, FromDB(other, "x"))
}
