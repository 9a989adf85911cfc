package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

type BookingRepository interface {
	// CreateWithPayment stores a PENDING booking and its PENDING payment
	// atomically. It fails with domain.ErrSlotTaken when the provider
	// already holds an active booking overlapping the slot.
	CreateWithPayment(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, scope domain.Scope, limit, offset int) ([]domain.Booking, error)
	// TransitionStatus writes `to` only when the current status is one of
	// `from`, reporting whether a row changed.
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) (bool, error)
	// Confirm sets CONFIRMED and the meeting link on a PENDING booking.
	Confirm(ctx context.Context, bookingID uuid.UUID, meetingLink string) (bool, error)
	GetExpiredPending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
}

type PaymentRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status domain.PaymentStatus) error
	TotalCaptured(ctx context.Context) (decimal.Decimal, error)
	// CountCapturedForCancelled counts settled payments whose booking is
	// CANCELLED; each one is owed a refund.
	CountCapturedForCancelled(ctx context.Context) (int, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
}

type OutboxRepository interface {
	// Append records the event, reporting false when an event with the
	// same id already exists.
	Append(ctx context.Context, event *domain.OutboxEvent) (bool, error)
	ListPending(ctx context.Context, maxAttempts, limit int) ([]domain.OutboxEvent, error)
	MarkProcessed(ctx context.Context, eventID uuid.UUID) error
	RecordFailure(ctx context.Context, eventID uuid.UUID, reason string) error
	// Claim reserves (event, consumer) for the caller. A claim that was
	// never completed can be taken over once the lease has passed.
	Claim(ctx context.Context, eventID uuid.UUID, consumer string, lease time.Duration) (bool, error)
	Complete(ctx context.Context, eventID uuid.UUID, consumer string) error
	Release(ctx context.Context, eventID uuid.UUID, consumer string) error
	IsCompleted(ctx context.Context, eventID uuid.UUID, consumer string) (bool, error)
}
