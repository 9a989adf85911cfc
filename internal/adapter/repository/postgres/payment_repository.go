package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

const paymentColumns = `id, paystack_ref, booking_id, amount, currency, status, created_at, updated_at`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID,
		&p.PaystackRef,
		&p.BookingID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return r.scanOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE paystack_ref = $1`, reference)
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	return r.scanOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1`, bookingID)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status domain.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE payments
	SET status = $1, updated_at = now()
	WHERE id = $2
	`, status, paymentID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

func (r *PaymentRepository) TotalCaptured(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'SUCCESS'`).Scan(&total)
	return total, err
}

func (r *PaymentRepository) CountCapturedForCancelled(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE p.status = 'SUCCESS' AND b.status = 'CANCELLED'`).Scan(&n)
	return n, err
}
