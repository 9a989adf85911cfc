package domain

import "errors"

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrAlreadyCancelled      = errors.New("already canceled")
	ErrCannotCancelCompleted = errors.New("cannot cancel completed")
	ErrSlotTaken             = errors.New("slot already booked")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrForbidden             = errors.New("forbidden")
	ErrNotProvider           = errors.New("selected profile is not a provider")
	ErrStatusChanged         = errors.New("booking status changed concurrently")
	ErrPaymentIncomplete     = errors.New("payment not completed")
	ErrAmountMismatch        = errors.New("paid amount does not match booking amount")
	ErrPaidBookingCancelled  = errors.New("payment captured for a cancelled booking, refund pending")
)
