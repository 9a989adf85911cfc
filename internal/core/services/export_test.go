package services

import "context"

func (s *BookingService) ProcessExpiredBookings(ctx context.Context) {
	s.processExpiredBookings(ctx)
}
