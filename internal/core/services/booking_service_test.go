package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"github.com/srgjo27/healthbook/internal/core/ports/mocks"
	"github.com/srgjo27/healthbook/internal/core/services"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFinalizer struct {
	refs []string
	err  error
}

func (f *stubFinalizer) HandleChargeSuccess(_ context.Context, reference string) error {
	f.refs = append(f.refs, reference)
	return f.err
}

type bookingFixture struct {
	bookings  *mocks.BookingRepository
	payments  *mocks.PaymentRepository
	profiles  *mocks.ProfileRepository
	gateway   *mocks.PaymentGateway
	finalizer *stubFinalizer
	service   *services.BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		bookings:  mocks.NewBookingRepository(t),
		payments:  mocks.NewPaymentRepository(t),
		profiles:  mocks.NewProfileRepository(t),
		gateway:   mocks.NewPaymentGateway(t),
		finalizer: &stubFinalizer{},
	}
	f.service = services.NewBookingService(f.bookings, f.payments, f.profiles, f.gateway, f.finalizer,
		services.BookingConfig{Currency: "NGN", CallbackURL: "https://app.test/callback", PendingTTL: 30 * time.Minute},
		zap.NewNop())
	return f
}

func bookingWith(status domain.BookingStatus, userID, providerID uuid.UUID) *domain.Booking {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		DietitianID: providerID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      status,
	}
}

func copyOf(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	clientID, providerID := uuid.New(), uuid.New()
	principal := domain.Principal{UserID: clientID, Role: domain.RoleUser}
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	f.profiles.On("GetByID", ctx, providerID).Return(&domain.Profile{
		ID:              providerID,
		FullName:        "Dr. Ada",
		Role:            domain.RoleDietitian,
		ConsultationFee: decimal.RequireFromString("5000.50"),
	}, nil)
	f.profiles.On("GetByID", ctx, clientID).Return(&domain.Profile{
		ID:    clientID,
		Email: "client@example.com",
		Role:  domain.RoleUser,
	}, nil)
	f.bookings.On("CreateWithPayment", ctx,
		mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingPending && b.UserID == clientID && b.DietitianID == providerID
		}),
		mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status == domain.PaymentPending && p.Amount.Equal(decimal.RequireFromString("5000.50"))
		}),
	).Return(nil)
	f.gateway.On("InitializeTransaction", ctx, mock.MatchedBy(func(req ports.InitializeRequest) bool {
		return req.AmountMinor == 500050 &&
			req.Email == "client@example.com" &&
			req.Currency == "NGN" &&
			req.CallbackURL == "https://app.test/callback" &&
			req.Metadata["booking_id"] != ""
	})).Return(&ports.InitializeResult{AuthorizationURL: "https://checkout.test/abc"}, nil)

	resp, err := f.service.CreateBooking(ctx, principal, services.CreateBookingRequest{
		DietitianID: providerID.String(),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/abc", resp.AuthorizationURL)
	assert.Equal(t, "5000.50", resp.Amount)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Contains(t, resp.Reference, "hb_")
}

func TestCreateBooking_OnlyClientsMayBook(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateBooking(context.Background(),
		domain.Principal{UserID: uuid.New(), Role: domain.RoleDietitian},
		services.CreateBookingRequest{DietitianID: uuid.NewString()})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	principal := domain.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	start := time.Now().Add(time.Hour)

	_, err := f.service.CreateBooking(ctx, principal, services.CreateBookingRequest{DietitianID: "nope", StartTime: start, EndTime: start.Add(time.Hour)})
	assert.Equal(t, apperror.ErrInvalidArgument, apperror.CodeOf(err))

	_, err = f.service.CreateBooking(ctx, principal, services.CreateBookingRequest{DietitianID: uuid.NewString(), StartTime: start, EndTime: start})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestCreateBooking_TargetNotProvider(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	otherID := uuid.New()
	start := time.Now().Add(time.Hour)

	f.profiles.On("GetByID", ctx, otherID).Return(&domain.Profile{ID: otherID, Role: domain.RoleUser}, nil)

	_, err := f.service.CreateBooking(ctx, domain.Principal{UserID: uuid.New(), Role: domain.RoleUser},
		services.CreateBookingRequest{DietitianID: otherID.String(), StartTime: start, EndTime: start.Add(time.Hour)})

	assert.ErrorIs(t, err, domain.ErrNotProvider)
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clientID, providerID := uuid.New(), uuid.New()
	start := time.Now().Add(time.Hour)

	f.profiles.On("GetByID", ctx, providerID).Return(&domain.Profile{ID: providerID, Role: domain.RoleTherapist, ConsultationFee: decimal.NewFromInt(100)}, nil)
	f.profiles.On("GetByID", ctx, clientID).Return(&domain.Profile{ID: clientID, Role: domain.RoleUser}, nil)
	f.bookings.On("CreateWithPayment", ctx, mock.Anything, mock.Anything).Return(domain.ErrSlotTaken)

	_, err := f.service.CreateBooking(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser},
		services.CreateBookingRequest{DietitianID: providerID.String(), StartTime: start, EndTime: start.Add(time.Hour)})

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestCreateBooking_GatewayFailureReleasesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clientID, providerID := uuid.New(), uuid.New()
	start := time.Now().Add(time.Hour)

	f.profiles.On("GetByID", ctx, providerID).Return(&domain.Profile{ID: providerID, Role: domain.RoleDietitian, ConsultationFee: decimal.NewFromInt(100)}, nil)
	f.profiles.On("GetByID", ctx, clientID).Return(&domain.Profile{ID: clientID, Role: domain.RoleUser}, nil)
	f.bookings.On("CreateWithPayment", ctx, mock.Anything, mock.Anything).Return(nil)
	f.gateway.On("InitializeTransaction", ctx, mock.Anything).Return(nil, errors.New("gateway down"))
	f.bookings.On("TransitionStatus", ctx, mock.AnythingOfType("uuid.UUID"),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled).Return(true, nil)

	resp, err := f.service.CreateBooking(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser},
		services.CreateBookingRequest{DietitianID: providerID.String(), StartTime: start, EndTime: start.Add(time.Hour)})

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestCancelBooking(t *testing.T) {
	clientID, providerID := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		status    domain.BookingStatus
		principal domain.Principal
		expectErr error
		writes    bool
	}{
		{
			name:      "pending booking is cancelled by client",
			status:    domain.BookingPending,
			principal: domain.Principal{UserID: clientID, Role: domain.RoleUser},
			writes:    true,
		},
		{
			name:      "confirmed booking is cancelled by provider",
			status:    domain.BookingConfirmed,
			principal: domain.Principal{UserID: providerID, Role: domain.RoleDietitian},
			writes:    true,
		},
		{
			name:      "completed booking is rejected without a write",
			status:    domain.BookingCompleted,
			principal: domain.Principal{UserID: clientID, Role: domain.RoleUser},
			expectErr: domain.ErrCannotCancelCompleted,
		},
		{
			name:      "cancelled booking is rejected without a write",
			status:    domain.BookingCancelled,
			principal: domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin},
			expectErr: domain.ErrAlreadyCancelled,
		},
		{
			name:      "booking outside scope looks absent",
			status:    domain.BookingPending,
			principal: domain.Principal{UserID: uuid.New(), Role: domain.RoleUser},
			expectErr: domain.ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			ctx := context.Background()
			booking := bookingWith(tt.status, clientID, providerID)

			f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)
			if tt.writes {
				f.bookings.On("TransitionStatus", ctx, booking.ID,
					[]domain.BookingStatus{tt.status}, domain.BookingCancelled).Return(true, nil)
			}

			got, err := f.service.CancelBooking(ctx, tt.principal, booking.ID)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				f.bookings.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingCancelled, got.Status)
		})
	}
}

func TestCancelBooking_ConcurrentTransition(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clientID := uuid.New()
	booking := bookingWith(domain.BookingPending, clientID, uuid.New())

	f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)
	f.bookings.On("TransitionStatus", ctx, booking.ID, []domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled).Return(false, nil)

	_, err := f.service.CancelBooking(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, booking.ID)
	assert.ErrorIs(t, err, domain.ErrStatusChanged)
}

func TestVerifyPayment_FinalizesPaidBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clientID := uuid.New()
	booking := bookingWith(domain.BookingPending, clientID, uuid.New())
	payment := &domain.Payment{ID: uuid.New(), PaystackRef: "ref_123", BookingID: booking.ID, Amount: decimal.NewFromInt(50), Status: domain.PaymentPending}

	confirmed := copyOf(booking)
	confirmed.Status = domain.BookingConfirmed
	confirmed.MeetingLink = "https://rooms.test/booking"

	f.payments.On("GetByReference", ctx, "ref_123").Return(payment, nil)
	f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil).Once()
	f.gateway.On("VerifyTransaction", ctx, "ref_123").Return(&ports.Transaction{Reference: "ref_123", Status: "success", AmountMinor: 5000}, nil)
	f.bookings.On("GetByID", ctx, booking.ID).Return(confirmed, nil).Once()

	got, err := f.service.VerifyPayment(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, "ref_123")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, []string{"ref_123"}, f.finalizer.refs)
}

func TestVerifyPayment_IncompleteOrShortCharge(t *testing.T) {
	tests := []struct {
		name      string
		tx        *ports.Transaction
		expectErr error
	}{
		{"abandoned", &ports.Transaction{Status: "abandoned", AmountMinor: 5000}, domain.ErrPaymentIncomplete},
		{"underpaid", &ports.Transaction{Status: "success", AmountMinor: 4999}, domain.ErrAmountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			ctx := context.Background()
			clientID := uuid.New()
			booking := bookingWith(domain.BookingPending, clientID, uuid.New())
			payment := &domain.Payment{ID: uuid.New(), PaystackRef: "ref_9", BookingID: booking.ID, Amount: decimal.NewFromInt(50)}

			f.payments.On("GetByReference", ctx, "ref_9").Return(payment, nil)
			f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)
			f.gateway.On("VerifyTransaction", ctx, "ref_9").Return(tt.tx, nil)

			_, err := f.service.VerifyPayment(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, "ref_9")

			assert.ErrorIs(t, err, tt.expectErr)
			assert.Empty(t, f.finalizer.refs)
		})
	}
}

func TestVerifyPayment_AlreadySettledSkipsGateway(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	clientID := uuid.New()
	booking := bookingWith(domain.BookingConfirmed, clientID, uuid.New())
	payment := &domain.Payment{ID: uuid.New(), PaystackRef: "ref_1", BookingID: booking.ID, Status: domain.PaymentSuccess}

	f.payments.On("GetByReference", ctx, "ref_1").Return(payment, nil)
	f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)

	got, err := f.service.VerifyPayment(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, "ref_1")

	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
	f.gateway.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
}

func TestListBookings_AppliesScope(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	providerID := uuid.New()

	f.bookings.On("List", ctx, domain.Scope{Field: domain.ScopeProvider, OwnerID: providerID}, 20, 0).
		Return([]domain.Booking{{ID: uuid.New()}}, nil)

	got, err := f.service.ListBookings(ctx, domain.Principal{UserID: providerID, Role: domain.RoleTherapist}, 500, -3)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListBookings_UnknownRoleForbidden(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.ListBookings(context.Background(), domain.Principal{UserID: uuid.New(), Role: "GUEST"}, 10, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerifyPayment_PaidButCancelled(t *testing.T) {
	t.Run("settled earlier", func(t *testing.T) {
		f := newBookingFixture(t)
		ctx := context.Background()
		clientID := uuid.New()
		booking := bookingWith(domain.BookingCancelled, clientID, uuid.New())
		payment := &domain.Payment{ID: uuid.New(), PaystackRef: "ref_7", BookingID: booking.ID, Status: domain.PaymentSuccess}

		f.payments.On("GetByReference", ctx, "ref_7").Return(payment, nil)
		f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)

		_, err := f.service.VerifyPayment(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, "ref_7")

		assert.ErrorIs(t, err, domain.ErrPaidBookingCancelled)
		f.gateway.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
	})

	t.Run("captured now", func(t *testing.T) {
		f := newBookingFixture(t)
		ctx := context.Background()
		clientID := uuid.New()
		booking := bookingWith(domain.BookingCancelled, clientID, uuid.New())
		payment := &domain.Payment{ID: uuid.New(), PaystackRef: "ref_8", BookingID: booking.ID, Amount: decimal.NewFromInt(50), Status: domain.PaymentPending}

		f.payments.On("GetByReference", ctx, "ref_8").Return(payment, nil)
		f.bookings.On("GetByID", ctx, booking.ID).Return(copyOf(booking), nil)
		f.gateway.On("VerifyTransaction", ctx, "ref_8").Return(&ports.Transaction{Status: "success", AmountMinor: 5000}, nil)

		_, err := f.service.VerifyPayment(ctx, domain.Principal{UserID: clientID, Role: domain.RoleUser}, "ref_8")

		assert.ErrorIs(t, err, domain.ErrPaidBookingCancelled)
		assert.Equal(t, []string{"ref_8"}, f.finalizer.refs)
	})
}

func TestProcessExpiredBookings(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	unpaid, late, unreachable, noPayment, blip := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	payment := func(bookingID uuid.UUID, ref string) *domain.Payment {
		return &domain.Payment{ID: uuid.New(), PaystackRef: ref, BookingID: bookingID, Amount: decimal.NewFromInt(50), Status: domain.PaymentPending}
	}
	toCancelled := func(id uuid.UUID) *mock.Call {
		return f.bookings.On("TransitionStatus", ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingCancelled)
	}

	f.bookings.On("GetExpiredPending", ctx, mock.AnythingOfType("time.Time"), 100).
		Return([]uuid.UUID{unpaid, late, unreachable, noPayment, blip}, nil)

	f.payments.On("GetByBookingID", ctx, unpaid).Return(payment(unpaid, "ref_unpaid"), nil)
	f.gateway.On("VerifyTransaction", ctx, "ref_unpaid").Return(&ports.Transaction{Status: "abandoned"}, nil)
	toCancelled(unpaid).Return(true, nil)

	f.payments.On("GetByBookingID", ctx, late).Return(payment(late, "ref_late"), nil)
	f.gateway.On("VerifyTransaction", ctx, "ref_late").Return(&ports.Transaction{Status: "success", AmountMinor: 5000}, nil)

	f.payments.On("GetByBookingID", ctx, unreachable).Return(payment(unreachable, "ref_down"), nil)
	f.gateway.On("VerifyTransaction", ctx, "ref_down").Return(nil, errors.New("gateway timeout"))

	f.payments.On("GetByBookingID", ctx, noPayment).Return(nil, domain.ErrPaymentNotFound)
	toCancelled(noPayment).Return(true, nil)

	f.payments.On("GetByBookingID", ctx, blip).Return(payment(blip, "ref_blip"), nil)
	f.gateway.On("VerifyTransaction", ctx, "ref_blip").Return(&ports.Transaction{Status: "failed"}, nil)
	toCancelled(blip).Return(false, errors.New("db blip"))

	f.service.ProcessExpiredBookings(ctx)

	assert.Equal(t, []string{"ref_late"}, f.finalizer.refs)
	f.bookings.AssertNotCalled(t, "TransitionStatus", ctx, late, mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "TransitionStatus", ctx, unreachable, mock.Anything, mock.Anything)
}
