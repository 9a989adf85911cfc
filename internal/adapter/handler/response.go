package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrBookingNotFound, http.StatusNotFound, apperror.ErrNotFound},
	{domain.ErrPaymentNotFound, http.StatusNotFound, apperror.ErrNotFound},
	{domain.ErrProfileNotFound, http.StatusNotFound, apperror.ErrNotFound},
	{domain.ErrAlreadyCancelled, http.StatusBadRequest, apperror.ErrInvalidArgument},
	{domain.ErrCannotCancelCompleted, http.StatusBadRequest, apperror.ErrInvalidArgument},
	{domain.ErrInvalidTimeRange, http.StatusBadRequest, apperror.ErrInvalidArgument},
	{domain.ErrNotProvider, http.StatusBadRequest, apperror.ErrInvalidArgument},
	{domain.ErrSlotTaken, http.StatusConflict, apperror.ErrConflict},
	{domain.ErrStatusChanged, http.StatusConflict, apperror.ErrConflict},
	{domain.ErrPaidBookingCancelled, http.StatusConflict, apperror.ErrConflict},
	{domain.ErrForbidden, http.StatusForbidden, apperror.ErrUnauthorized},
	{domain.ErrPaymentIncomplete, http.StatusPaymentRequired, apperror.ErrInvalidArgument},
	{domain.ErrAmountMismatch, http.StatusPaymentRequired, apperror.ErrInvalidArgument},
}

// respondError maps err to a status code. Known domain errors keep their
// message; anything else is logged and reported as a bare 500.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			return c.JSON(de.status, errorBody{Error: de.err.Error(), Code: de.code})
		}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code() != apperror.ErrInternal {
		return c.JSON(apperror.HTTPStatus(appErr.Code()), errorBody{Error: appErr.Message(), Code: appErr.Code()})
	}

	apperror.LogError(logger, err, "Request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error", Code: apperror.ErrInternal})
}

// HTTPErrorHandler renders errors returned by middleware and the router
// in the same shape handlers use.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(he.Code)
				return
			}
			_ = c.JSON(he.Code, errorBody{Error: msg})
			return
		}

		_ = respondError(c, logger, err)
	}
}
