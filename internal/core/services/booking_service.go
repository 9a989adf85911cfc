package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"go.uber.org/zap"
)

type CreateBookingRequest struct {
	DietitianID string    `json:"dietitian_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

type CreateBookingResponse struct {
	BookingID        string `json:"booking_id"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
}

// Finalizer confirms a booking once its payment reference is paid.
type Finalizer interface {
	HandleChargeSuccess(ctx context.Context, reference string) error
}

type BookingConfig struct {
	Currency        string
	CallbackURL     string
	PendingTTL      time.Duration
	CleanupInterval time.Duration
}

type BookingService struct {
	bookings  ports.BookingRepository
	payments  ports.PaymentRepository
	profiles  ports.ProfileRepository
	gateway   ports.PaymentGateway
	finalizer Finalizer
	cfg       BookingConfig
	logger    *zap.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	payments ports.PaymentRepository,
	profiles ports.ProfileRepository,
	gateway ports.PaymentGateway,
	finalizer Finalizer,
	cfg BookingConfig,
	logger *zap.Logger,
) *BookingService {
	if cfg.Currency == "" {
		cfg.Currency = "NGN"
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	return &BookingService{
		bookings:  bookings,
		payments:  payments,
		profiles:  profiles,
		gateway:   gateway,
		finalizer: finalizer,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateBooking reserves a provider slot for a client and opens a
// gateway transaction for the consultation fee.
func (s *BookingService) CreateBooking(ctx context.Context, principal domain.Principal, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if principal.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}

	providerID, err := uuid.Parse(req.DietitianID)
	if err != nil {
		return nil, apperror.New(apperror.ErrInvalidArgument, "invalid dietitian id", err)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	provider, err := s.profiles.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("lookup provider: %w", err)
	}
	if !provider.Role.IsProvider() {
		return nil, domain.ErrNotProvider
	}

	client, err := s.profiles.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup client: %w", err)
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:          uuid.New(),
		UserID:      principal.UserID,
		DietitianID: providerID,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		Status:      domain.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		PaystackRef: domain.NewPaymentReference(),
		BookingID:   booking.ID,
		Amount:      provider.ConsultationFee,
		Currency:    s.cfg.Currency,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookings.CreateWithPayment(ctx, booking, payment); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	session, err := s.gateway.InitializeTransaction(ctx, ports.InitializeRequest{
		Email:       client.Email,
		AmountMinor: payment.MinorUnits(),
		Currency:    payment.Currency,
		Reference:   payment.PaystackRef,
		CallbackURL: s.cfg.CallbackURL,
		Metadata: map[string]string{
			"booking_id": booking.ID.String(),
		},
	})
	if err != nil {
		s.logger.Error("Failed to initialize transaction, releasing slot",
			zap.String("booking_id", booking.ID.String()),
			zap.Error(err))
		s.releaseSlot(ctx, booking.ID)
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}

	return &CreateBookingResponse{
		BookingID:        booking.ID.String(),
		Reference:        payment.PaystackRef,
		AuthorizationURL: session.AuthorizationURL,
		Amount:           payment.Amount.StringFixed(2),
		Currency:         payment.Currency,
		Status:           string(booking.Status),
	}, nil
}

func (s *BookingService) releaseSlot(ctx context.Context, bookingID uuid.UUID) {
	_, err := s.bookings.TransitionStatus(ctx, bookingID, []domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled)
	if err != nil {
		s.logger.Error("Failed to release slot", zap.String("booking_id", bookingID.String()), zap.Error(err))
	}
}

// VerifyPayment asks the gateway about reference and, when the charge
// succeeded, finalizes the booking the same way the webhook does.
func (s *BookingService) VerifyPayment(ctx context.Context, principal domain.Principal, reference string) (*domain.Booking, error) {
	payment, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	booking, err := s.scopedBooking(ctx, principal, payment.BookingID)
	if err != nil {
		return nil, err
	}

	if payment.IsSettled() && booking.Status != domain.BookingPending {
		return settledBooking(booking)
	}

	if err := s.checkCharge(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.finalizer.HandleChargeSuccess(ctx, reference); err != nil {
		return nil, fmt.Errorf("finalize %s: %w", reference, err)
	}

	updated, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return settledBooking(updated)
}

// settledBooking reports a paid booking that can no longer be honoured.
func settledBooking(b *domain.Booking) (*domain.Booking, error) {
	if b.Status == domain.BookingCancelled {
		return nil, domain.ErrPaidBookingCancelled
	}
	return b, nil
}

// checkCharge returns nil when the gateway reports the payment's charge
// as captured in full.
func (s *BookingService) checkCharge(ctx context.Context, payment *domain.Payment) error {
	tx, err := s.gateway.VerifyTransaction(ctx, payment.PaystackRef)
	if err != nil {
		return fmt.Errorf("verify transaction %s: %w", payment.PaystackRef, err)
	}
	if !tx.Succeeded() {
		return domain.ErrPaymentIncomplete
	}
	if tx.AmountMinor < payment.MinorUnits() {
		s.logger.Warn("Paid amount below booking amount",
			zap.String("reference", payment.PaystackRef),
			zap.Int64("paid", tx.AmountMinor),
			zap.Int64("expected", payment.MinorUnits()))
		return domain.ErrAmountMismatch
	}
	return nil
}

// CancelBooking cancels a booking the principal can see.
func (s *BookingService) CancelBooking(ctx context.Context, principal domain.Principal, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.scopedBooking(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if err := booking.Cancel(); err != nil {
		return nil, err
	}

	changed, err := s.bookings.TransitionStatus(ctx, bookingID, []domain.BookingStatus{from}, domain.BookingCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !changed {
		return nil, domain.ErrStatusChanged
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("by", principal.UserID.String()),
		zap.String("from", string(from)))
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, principal domain.Principal, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.scopedBooking(ctx, principal, bookingID)
}

func (s *BookingService) ListBookings(ctx context.Context, principal domain.Principal, limit, offset int) ([]domain.Booking, error) {
	scope, err := domain.ScopeFor(domain.ResourceBookings, principal)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.bookings.List(ctx, scope, limit, offset)
}

// scopedBooking hides bookings outside the principal's scope behind
// ErrBookingNotFound.
func (s *BookingService) scopedBooking(ctx context.Context, principal domain.Principal, bookingID uuid.UUID) (*domain.Booking, error) {
	scope, err := domain.ScopeFor(domain.ResourceBookings, principal)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !scope.Allows(booking) {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	s.logger.Info("Pending booking cleanup started",
		zap.Duration("interval", s.cfg.CleanupInterval),
		zap.Duration("pending_ttl", s.cfg.PendingTTL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Pending booking cleanup stopped")
			return
		case <-ticker.C:
			s.processExpiredBookings(ctx)
		}
	}
}

func (s *BookingService) processExpiredBookings(ctx context.Context) {
	ids, err := s.bookings.GetExpiredPending(ctx, time.Now().Add(-s.cfg.PendingTTL), 100)
	if err != nil {
		s.logger.Error("Error fetching expired bookings", zap.Error(err))
		return
	}

	if len(ids) == 0 {
		return
	}

	s.logger.Info("Cancelling unpaid bookings", zap.Int("count", len(ids)))

	for _, id := range ids {
		s.expireBooking(ctx, id)
	}
}

// expireBooking asks the gateway before cancelling: a charge that landed
// after the pending window is finalized instead. When the gateway cannot
// answer the booking stays PENDING until the next pass.
func (s *BookingService) expireBooking(ctx context.Context, id uuid.UUID) {
	payment, err := s.payments.GetByBookingID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
	case err != nil:
		s.logger.Error("Failed to load payment for expired booking", zap.String("booking_id", id.String()), zap.Error(err))
		return
	default:
		err := s.checkCharge(ctx, payment)
		switch {
		case err == nil:
			s.logger.Info("Charge captured after pending window, finalizing",
				zap.String("booking_id", id.String()),
				zap.String("reference", payment.PaystackRef))
			if err := s.finalizer.HandleChargeSuccess(ctx, payment.PaystackRef); err != nil {
				s.logger.Error("Failed to finalize late charge", zap.String("reference", payment.PaystackRef), zap.Error(err))
			}
			return
		case errors.Is(err, domain.ErrPaymentIncomplete), errors.Is(err, domain.ErrAmountMismatch):
		default:
			s.logger.Warn("Gateway check failed, keeping booking pending",
				zap.String("booking_id", id.String()),
				zap.Error(err))
			return
		}
	}

	changed, err := s.bookings.TransitionStatus(ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled)
	if err != nil {
		s.logger.Error("Failed to cancel expired booking", zap.String("booking_id", id.String()), zap.Error(err))
		return
	}
	if changed {
		s.logger.Info("Booking expired and slot released", zap.String("booking_id", id.String()))
	}
}
