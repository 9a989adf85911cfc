package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookingCancel(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		wantErr error
	}{
		{BookingPending, nil},
		{BookingConfirmed, nil},
		{BookingCancelled, ErrAlreadyCancelled},
		{BookingCompleted, ErrCannotCancelCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.Cancel()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, b.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, BookingCancelled, b.Status)
		})
	}
}

func TestBookingConfirm(t *testing.T) {
	b := &Booking{Status: BookingPending}
	assert.True(t, b.Confirm("https://rooms.test/a"))
	assert.Equal(t, BookingConfirmed, b.Status)
	assert.Equal(t, "https://rooms.test/a", b.MeetingLink)

	assert.False(t, b.Confirm("https://rooms.test/b"))
	assert.Equal(t, "https://rooms.test/a", b.MeetingLink)
}

func TestBookingRoom(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	end := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := &Booking{ID: id, EndTime: end}

	assert.Equal(t, "booking-11111111-2222-3333-4444-555555555555", b.RoomName())
	assert.Equal(t, end.Add(24*time.Hour), b.RoomExpiry())
}

func TestPaymentMinorUnits(t *testing.T) {
	assert.Equal(t, int64(500050), (&Payment{Amount: decimal.RequireFromString("5000.50")}).MinorUnits())
	assert.Equal(t, int64(1), (&Payment{Amount: decimal.RequireFromString("0.005")}).MinorUnits())
}

func TestFinalizedEventID_Deterministic(t *testing.T) {
	assert.Equal(t, FinalizedEventID("ref_123"), FinalizedEventID("ref_123"))
	assert.NotEqual(t, FinalizedEventID("ref_123"), FinalizedEventID("ref_124"))

	e := NewBookingFinalizedEvent(&Payment{PaystackRef: "ref_123"})
	assert.Equal(t, FinalizedEventID("ref_123"), e.ID)
	assert.Equal(t, EventBookingFinalized, e.Kind)
}
