package services

import (
	"context"
	"fmt"

	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
)

type Overview struct {
	Bookings      map[domain.BookingStatus]int `json:"bookings"`
	TotalBookings int                          `json:"total_bookings"`
	Revenue       string                       `json:"revenue"`
	Currency      string                       `json:"currency"`

	// RefundsDue counts captured payments whose booking ended CANCELLED.
	RefundsDue int `json:"refunds_due"`
}

type AdminService struct {
	bookings ports.BookingRepository
	payments ports.PaymentRepository
	currency string
}

func NewAdminService(bookings ports.BookingRepository, payments ports.PaymentRepository, currency string) *AdminService {
	if currency == "" {
		currency = "NGN"
	}
	return &AdminService{bookings: bookings, payments: payments, currency: currency}
}

func (s *AdminService) Overview(ctx context.Context, principal domain.Principal) (*Overview, error) {
	if principal.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	revenue, err := s.payments.TotalCaptured(ctx)
	if err != nil {
		return nil, fmt.Errorf("total captured: %w", err)
	}

	refunds, err := s.payments.CountCapturedForCancelled(ctx)
	if err != nil {
		return nil, fmt.Errorf("count refunds due: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &Overview{
		Bookings:      counts,
		TotalBookings: total,
		Revenue:       revenue.StringFixed(2),
		Currency:      s.currency,
		RefundsDue:    refunds,
	}, nil
}
