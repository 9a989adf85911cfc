package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleDietitian Role = "DIETITIAN"
	RoleTherapist Role = "THERAPIST"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDietitian, RoleTherapist, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsProvider() bool {
	return r == RoleDietitian || r == RoleTherapist
}

// Profile is the public face of an account. Email may be empty when the
// account has none on record.
type Profile struct {
	ID              uuid.UUID       `json:"id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Role            Role            `json:"role"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

// DisplayName falls back to the email when no name is set.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

// Principal is the authenticated caller a request acts for.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
