package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "Unknown error occurred",
		},
		{
			name: "app error uses message",
			err:  NewInvalidInput("bad field", nil),
			want: "Invalid input provided",
		},
		{
			name: "app error without message falls back to details",
			err:  &AppError{BaseError: ErrInternal, Details: "pool exhausted"},
			want: "pool exhausted",
		},
		{
			name: "plain error uses Error()",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "wrapped app error still found",
			err:  errors.Join(errors.New("outer"), NewNotFound("portfolio", "abc")),
			want: "portfolio not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.err))
		})
	}
}

func TestDisplay_NeverEmpty(t *testing.T) {
	errs := []error{
		nil,
		errors.New(""),
		&AppError{BaseError: ErrInternal},
		NewInternal("", nil),
	}
	for _, err := range errs {
		assert.NotEmpty(t, Display(err))
	}
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NewNotFound("portfolio", "x")))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewInvalidInput("bad", nil)))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(NewUnauthorized("nope", nil)))
	assert.Equal(t, http.StatusForbidden, ToHTTPStatus(NewPermissionDenied("nope")))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(NewConflict("portfolio", "slug", "x")))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(errors.New("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewConflict("user", "email", "a@b.c")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}
