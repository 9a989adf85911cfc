package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	query := `
	SELECT id, full_name, email, role, consultation_fee
	FROM profiles
	WHERE id = $1
	`

	var p domain.Profile
	err := r.db.QueryRowContext(ctx, query, profileID).Scan(
		&p.ID,
		&p.FullName,
		&p.Email,
		&p.Role,
		&p.ConsultationFee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Upsert writes a profile, replacing the stored fields when the id exists.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO profiles (id, full_name, email, role, consultation_fee)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET full_name = EXCLUDED.full_name,
		email = EXCLUDED.email,
		role = EXCLUDED.role,
		consultation_fee = EXCLUDED.consultation_fee
	`, p.ID, p.FullName, p.Email, p.Role, p.ConsultationFee)
	return err
}
