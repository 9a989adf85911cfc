package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

type OutboxRepository struct {
	db *sql.DB
}

func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Append(ctx context.Context, event *domain.OutboxEvent) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
	INSERT INTO outbox_events (id, kind, reference, payment_id, booking_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING
	`, event.ID, event.Kind, event.Reference, event.PaymentID, event.BookingID, event.CreatedAt)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, maxAttempts, limit int) ([]domain.OutboxEvent, error) {
	query := `
	SELECT id, kind, reference, payment_id, booking_id, attempts, last_error, created_at
	FROM outbox_events
	WHERE processed_at IS NULL AND attempts < $1
	ORDER BY created_at
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, maxAttempts, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.Reference,
			&e.PaymentID,
			&e.BookingID,
			&e.Attempts,
			&e.LastError,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *OutboxRepository) MarkProcessed(ctx context.Context, eventID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE outbox_events SET processed_at = now()
	WHERE id = $1 AND processed_at IS NULL
	`, eventID)
	return err
}

func (r *OutboxRepository) RecordFailure(ctx context.Context, eventID uuid.UUID, reason string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE outbox_events SET attempts = attempts + 1, last_error = $2
	WHERE id = $1
	`, eventID, reason)
	return err
}

// Claim inserts the (event, consumer) row, or takes over a stale
// uncompleted one. No row back means someone else holds it or it is done.
func (r *OutboxRepository) Claim(ctx context.Context, eventID uuid.UUID, consumer string, lease time.Duration) (bool, error) {
	query := `
	INSERT INTO outbox_consumptions (event_id, consumer, claimed_at)
	VALUES ($1, $2, now())
	ON CONFLICT (event_id, consumer) DO UPDATE
	SET claimed_at = now()
	WHERE outbox_consumptions.completed_at IS NULL
	  AND outbox_consumptions.claimed_at < now() - make_interval(secs => $3)
	RETURNING event_id
	`

	var claimed uuid.UUID
	err := r.db.QueryRowContext(ctx, query, eventID, consumer, lease.Seconds()).Scan(&claimed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *OutboxRepository) Complete(ctx context.Context, eventID uuid.UUID, consumer string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE outbox_consumptions SET completed_at = now()
	WHERE event_id = $1 AND consumer = $2
	`, eventID, consumer)
	return err
}

func (r *OutboxRepository) Release(ctx context.Context, eventID uuid.UUID, consumer string) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM outbox_consumptions
	WHERE event_id = $1 AND consumer = $2 AND completed_at IS NULL
	`, eventID, consumer)
	return err
}

func (r *OutboxRepository) IsCompleted(ctx context.Context, eventID uuid.UUID, consumer string) (bool, error) {
	var done bool
	err := r.db.QueryRowContext(ctx, `
	SELECT EXISTS (
		SELECT 1 FROM outbox_consumptions
		WHERE event_id = $1 AND consumer = $2 AND completed_at IS NOT NULL
	)
	`, eventID, consumer).Scan(&done)
	return done, err
}
