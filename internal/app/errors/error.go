package errors

import (
	stderrors "errors"
	"net/http"
	"reflect"

	"github.com/sirupsen/logrus"
)

type ErrorKind string

const (
	KindValidation           ErrorKind = "VALIDATION"
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindStore                ErrorKind = "STORE"
	KindUnsupportedMediaType ErrorKind = "UNSUPPORTED_MEDIA_TYPE"
	KindTooManyRequests      ErrorKind = "TOO_MANY_REQUESTS"
	KindUnavailable          ErrorKind = "UNAVAILABLE"
)

type AppError struct {
	StatusCode int
	Kind       ErrorKind
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, kind ErrorKind, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message,
	}
}

// NewValidationError reports bad caller input. The caller can always fix it by resubmitting.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message)
}

// NewStoreError wraps a persistence failure. The original error is logged here
// and kept for errors.Is/As, but never shown to clients.
func NewStoreError(originalError error, message string) *AppError {
	if originalError != nil {
		logrus.Errorf("[%s] %s", reflect.TypeOf(originalError).String(), originalError)
	}
	appErr := NewAppError(http.StatusInternalServerError, KindStore, message)
	appErr.Err = originalError
	return appErr
}

func NewUnsupportedMediaTypeError(message string) *AppError {
	return NewAppError(http.StatusUnsupportedMediaType, KindUnsupportedMediaType, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, KindTooManyRequests, message)
}

func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, KindUnavailable, message)
}

func kindOf(err error) ErrorKind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

func IsStore(err error) bool {
	return kindOf(err) == KindStore
}
