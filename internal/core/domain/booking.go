package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking is a consultation slot between a client (UserID) and a
// provider (DietitianID, which also holds therapists).
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	DietitianID uuid.UUID     `json:"dietitian_id"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Status      BookingStatus `json:"status"`
	MeetingLink string        `json:"meeting_link"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}

// Cancel moves the booking to CANCELLED. CANCELLED and COMPLETED are
// terminal; every other state may be cancelled.
func (b *Booking) Cancel() error {
	switch b.Status {
	case BookingCancelled:
		return ErrAlreadyCancelled
	case BookingCompleted:
		return ErrCannotCancelCompleted
	}

	b.Status = BookingCancelled
	return nil
}

// Confirm attaches the meeting link and moves a PENDING booking to
// CONFIRMED. It reports false when the booking was not PENDING.
func (b *Booking) Confirm(meetingLink string) bool {
	if b.Status != BookingPending {
		return false
	}

	b.Status = BookingConfirmed
	b.MeetingLink = meetingLink
	return true
}

// RoomName is the video room identifier for this booking.
func (b *Booking) RoomName() string {
	return "booking-" + b.ID.String()
}

// RoomExpiry is when the video room stops accepting participants.
func (b *Booking) RoomExpiry() time.Time {
	return b.EndTime.Add(24 * time.Hour)
}
