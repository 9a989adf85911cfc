// Package apperror carries coded errors across the service and maps them
// onto HTTP responses.
package apperror

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string { return e.code }

func (e *AppError) Message() string { return e.message }

func (e *AppError) Unwrap() error { return e.err }

func New(code, message string, err error) *AppError {
	return &AppError{code: code, message: message, err: err}
}

// Wrap keeps the code of an existing AppError and defaults to INTERNAL.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return New(appErr.Code(), message, err)
	}
	return New(ErrInternal, message, err)
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// LogError logs err with its code attached when it carries one.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	all := make([]zap.Field, 0, len(fields)+2)
	all = append(all, zap.Error(err))

	var appErr *AppError
	if errors.As(err, &appErr) {
		all = append(all, zap.String("error_code", appErr.Code()))
	}

	all = append(all, fields...)
	logger.Error(msg, all...)
}
