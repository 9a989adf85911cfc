package domain

import (
	"time"

	"github.com/google/uuid"
)

const EventBookingFinalized = "booking.finalized"

// outboxNamespace seeds deterministic event ids so the same payment
// reference always maps to the same event.
var outboxNamespace = uuid.MustParse("6f1d4b0e-2d7a-4c55-9a43-5b1f0f7d9e21")

type OutboxEvent struct {
	ID          uuid.UUID
	Kind        string
	Reference   string
	PaymentID   uuid.UUID
	BookingID   uuid.UUID
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewBookingFinalizedEvent(p *Payment) *OutboxEvent {
	return &OutboxEvent{
		ID:        FinalizedEventID(p.PaystackRef),
		Kind:      EventBookingFinalized,
		Reference: p.PaystackRef,
		PaymentID: p.ID,
		BookingID: p.BookingID,
		CreatedAt: time.Now().UTC(),
	}
}

func FinalizedEventID(reference string) uuid.UUID {
	return uuid.NewSHA1(outboxNamespace, []byte(EventBookingFinalized+":"+reference))
}
