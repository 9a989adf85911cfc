package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

const bookingColumns = `id, user_id, dietitian_id, start_time, end_time, status, meeting_link, created_at, updated_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.DietitianID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.MeetingLink,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) CreateWithPayment(ctx context.Context, booking *domain.Booking, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	// Serialize bookings per provider so two requests for the same slot
	// cannot both pass the overlap check.
	var providerID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, booking.DietitianID).Scan(&providerID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock provider: %w", err)
	}

	var overlapping bool
	err = tx.QueryRowContext(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE dietitian_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_time < $3
		  AND end_time > $2
	)
	`, booking.DietitianID, booking.StartTime, booking.EndTime).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check slot: %w", err)
	}
	if overlapping {
		return domain.ErrSlotTaken
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO bookings (id, user_id, dietitian_id, start_time, end_time, status, meeting_link, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, booking.ID, booking.UserID, booking.DietitianID, booking.StartTime, booking.EndTime,
		booking.Status, booking.MeetingLink, booking.CreatedAt, booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO payments (id, paystack_ref, booking_id, amount, currency, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, payment.ID, payment.PaystackRef, payment.BookingID, payment.Amount, payment.Currency,
		payment.Status, payment.CreatedAt, payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)

	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return booking, err
}

func (r *BookingRepository) List(ctx context.Context, scope domain.Scope, limit, offset int) ([]domain.Booking, error) {
	where, args := scopeFilter(scope)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY start_time DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

func scopeFilter(scope domain.Scope) (string, []any) {
	if scope.All {
		return "", nil
	}
	switch scope.Field {
	case domain.ScopeProvider:
		return "WHERE dietitian_id = $1", []any{scope.OwnerID}
	default:
		return "WHERE user_id = $1", []any{scope.OwnerID}
	}
}

func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID uuid.UUID, from []domain.BookingStatus, to domain.BookingStatus) (bool, error) {
	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	result, err := r.db.ExecContext(ctx, `
	UPDATE bookings
	SET status = $1, updated_at = now()
	WHERE id = $2 AND status = ANY($3)
	`, to, bookingID, pq.Array(allowed))
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *BookingRepository) Confirm(ctx context.Context, bookingID uuid.UUID, meetingLink string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
	UPDATE bookings
	SET status = 'CONFIRMED', meeting_link = $2, updated_at = now()
	WHERE id = $1 AND status = 'PENDING'
	`, bookingID, meetingLink)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// GetExpiredPending returns PENDING bookings created before the cutoff
// whose payment never settled.
func (r *BookingRepository) GetExpiredPending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	query := `
	SELECT b.id FROM bookings b
	JOIN payments p ON p.booking_id = b.id
	WHERE b.status = 'PENDING' AND p.status = 'PENDING' AND b.created_at < $1
	ORDER BY b.created_at
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, createdBefore, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}

	return counts, rows.Err()
}
