package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/services"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, principal domain.Principal, req services.CreateBookingRequest) (*services.CreateBookingResponse, error)
	VerifyPayment(ctx context.Context, principal domain.Principal, reference string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, principal domain.Principal, bookingID uuid.UUID) (*domain.Booking, error)
	GetBooking(ctx context.Context, principal domain.Principal, bookingID uuid.UUID) (*domain.Booking, error)
	ListBookings(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Booking, error)
}

type BookingHandler struct {
	svc    BookingUseCase
	logger *zap.Logger
}

func NewBookingHandler(svc BookingUseCase, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return respondError(c, h.logger, domain.ErrForbidden)
	}

	var req services.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid json body", Code: apperror.ErrInvalidArgument})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.svc.CreateBooking(c.Request().Context(), principal, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return respondError(c, h.logger, domain.ErrForbidden)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	bookings, err := h.svc.ListBookings(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	principal, id, err := h.principalAndID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	principal, id, err := h.principalAndID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) VerifyPayment(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return respondError(c, h.logger, domain.ErrForbidden)
	}

	reference := c.QueryParam("reference")
	if reference == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "reference is required", Code: apperror.ErrInvalidArgument})
	}

	booking, err := h.svc.VerifyPayment(c.Request().Context(), principal, reference)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) principalAndID(c echo.Context) (domain.Principal, uuid.UUID, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return domain.Principal{}, uuid.Nil, domain.ErrForbidden
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domain.Principal{}, uuid.Nil, apperror.New(apperror.ErrInvalidArgument, "invalid booking id", err)
	}
	return principal, id, nil
}
