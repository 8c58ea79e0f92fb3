package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		validation bool
		notFound   bool
		store      bool
	}{
		{
			name:       "validation",
			err:        NewValidationError("malformed body"),
			status:     http.StatusBadRequest,
			validation: true,
		},
		{
			name:     "not found",
			err:      NewNotFoundError("Promotion not found"),
			status:   http.StatusNotFound,
			notFound: true,
		},
		{
			name:   "store",
			err:    NewStoreError(stderrors.New("connection reset"), "Failed to save promotion"),
			status: http.StatusInternalServerError,
			store:  true,
		},
		{
			name:   "unsupported media type",
			err:    NewUnsupportedMediaTypeError("Content-Type must be application/json"),
			status: http.StatusUnsupportedMediaType,
		},
		{
			name:   "too many requests",
			err:    NewTooManyRequestsError("Rate limit exceeded"),
			status: http.StatusTooManyRequests,
		},
		{
			name:   "service unavailable",
			err:    NewServiceUnavailableError("database unavailable"),
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *AppError
			require.True(t, stderrors.As(tt.err, &appErr))
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.store, IsStore(tt.err))
		})
	}
}

func TestStoreErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := fmt.Errorf("redeem: %w", NewStoreError(cause, "Failed to redeem promotion"))

	assert.True(t, IsStore(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "redeem: Failed to redeem promotion", err.Error())
}

func TestPlainErrorHasNoKind(t *testing.T) {
	err := stderrors.New("boom")

	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsStore(err))
}
