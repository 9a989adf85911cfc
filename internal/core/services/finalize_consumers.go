package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

const (
	roomMaxParticipants = 10

	ConsumerPayment      = "payment"
	ConsumerBooking      = "booking"
	ConsumerNotification = "notification"
)

var errBookingNotConfirmed = errors.New("booking not confirmed yet")

// PaymentConsumer settles the payment behind the event.
type PaymentConsumer struct {
	payments ports.PaymentRepository
	logger   *zap.Logger
}

func NewPaymentConsumer(payments ports.PaymentRepository, logger *zap.Logger) *PaymentConsumer {
	return &PaymentConsumer{payments: payments, logger: logger}
}

func (c *PaymentConsumer) Name() string { return ConsumerPayment }

func (c *PaymentConsumer) Consume(ctx context.Context, event *domain.OutboxEvent) error {
	payment, err := c.payments.GetByReference(ctx, event.Reference)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		c.logger.Warn("Payment vanished before settlement", zap.String("reference", event.Reference))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup payment %s: %w", event.Reference, err)
	}

	if payment.IsSettled() {
		c.logger.Info("Payment already settled", zap.String("reference", event.Reference))
		return nil
	}

	if err := c.payments.UpdateStatus(ctx, payment.ID, domain.PaymentSuccess); err != nil {
		return fmt.Errorf("mark payment %s success: %w", payment.ID, err)
	}
	return nil
}

// BookingConsumer provisions the video room and confirms the booking.
type BookingConsumer struct {
	bookings ports.BookingRepository
	rooms    ports.RoomProvider
	logger   *zap.Logger
}

func NewBookingConsumer(bookings ports.BookingRepository, rooms ports.RoomProvider, logger *zap.Logger) *BookingConsumer {
	return &BookingConsumer{bookings: bookings, rooms: rooms, logger: logger}
}

func (c *BookingConsumer) Name() string { return ConsumerBooking }

func (c *BookingConsumer) Consume(ctx context.Context, event *domain.OutboxEvent) error {
	booking, err := c.bookings.GetByID(ctx, event.BookingID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		c.logger.Warn("No booking for paid reference",
			zap.String("reference", event.Reference),
			zap.String("booking_id", event.BookingID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup booking %s: %w", event.BookingID, err)
	}

	switch booking.Status {
	case domain.BookingConfirmed, domain.BookingCompleted:
		c.logger.Info("Booking already confirmed", zap.String("booking_id", booking.ID.String()))
		return nil
	case domain.BookingCancelled:
		c.logger.Error("Payment captured for cancelled booking, refund due",
			zap.String("booking_id", booking.ID.String()),
			zap.String("reference", event.Reference))
		return nil
	}

	meetingLink := c.provisionRoom(ctx, booking)

	changed, err := c.bookings.Confirm(ctx, booking.ID, meetingLink)
	if err != nil {
		return fmt.Errorf("confirm booking %s: %w", booking.ID, err)
	}
	if !changed {
		c.logger.Warn("Booking left PENDING before confirmation", zap.String("booking_id", booking.ID.String()))
	}
	return nil
}

// provisionRoom returns the room URL, or "" when the provider fails. A
// confirmed booking without a link beats no confirmation.
func (c *BookingConsumer) provisionRoom(ctx context.Context, booking *domain.Booking) string {
	room, err := c.rooms.CreateRoom(ctx, ports.RoomRequest{
		Name:              booking.RoomName(),
		ExpiresAt:         booking.RoomExpiry(),
		MaxParticipants:   roomMaxParticipants,
		EnableChat:        true,
		EnableScreenshare: true,
	})
	if err != nil {
		c.logger.Error("Room creation failed, confirming without meeting link",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err))
		return ""
	}
	return room.URL
}

// NotificationConsumer enqueues the confirmation email for each party
// whose address resolves.
type NotificationConsumer struct {
	bookings ports.BookingRepository
	profiles ports.ProfileRepository
	queue    ports.NotificationQueue
	logger   *zap.Logger
}

func NewNotificationConsumer(
	bookings ports.BookingRepository,
	profiles ports.ProfileRepository,
	queue ports.NotificationQueue,
	logger *zap.Logger,
) *NotificationConsumer {
	return &NotificationConsumer{bookings: bookings, profiles: profiles, queue: queue, logger: logger}
}

func (c *NotificationConsumer) Name() string { return ConsumerNotification }

func (c *NotificationConsumer) Consume(ctx context.Context, event *domain.OutboxEvent) error {
	booking, err := c.bookings.GetByID(ctx, event.BookingID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup booking %s: %w", event.BookingID, err)
	}

	switch booking.Status {
	case domain.BookingPending:
		return errBookingNotConfirmed
	case domain.BookingCancelled:
		return nil
	}

	client := c.lookupProfile(ctx, booking.UserID)
	provider := c.lookupProfile(ctx, booking.DietitianID)

	title := "Consultation"
	if provider != nil && provider.DisplayName() != "" {
		title = "Consultation with " + provider.DisplayName()
	}
	date, clock := formatSlot(booking)

	for _, party := range []*domain.Profile{client, provider} {
		if party == nil || party.Email == "" {
			continue
		}

		job := domain.NotificationJob{
			To:       party.Email,
			Subject:  "Booking confirmed: " + title,
			Template: domain.TemplateBookingConfirmation,
			Data: domain.BookingConfirmationData{
				UserName:    party.DisplayName(),
				EventTitle:  title,
				Date:        date,
				Time:        clock,
				MeetingLink: booking.MeetingLink,
			}.Map(),
		}

		if err := c.queue.Enqueue(ctx, job); err != nil {
			c.logger.Error("Failed to enqueue booking confirmation",
				zap.String("booking_id", booking.ID.String()),
				zap.String("to", party.Email),
				zap.Error(err))
		}
	}
	return nil
}

func (c *NotificationConsumer) lookupProfile(ctx context.Context, id uuid.UUID) *domain.Profile {
	profile, err := c.profiles.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			c.logger.Warn("Profile lookup failed", zap.String("profile_id", id.String()), zap.Error(err))
		}
		return nil
	}
	return profile
}

func formatSlot(b *domain.Booking) (date, clock string) {
	start := b.StartTime.UTC()
	end := b.EndTime.UTC()
	return start.Format("Monday, January 2, 2006"), start.Format("15:04") + " - " + end.Format("15:04") + " UTC"
}
