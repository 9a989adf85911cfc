package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
)

type Payment struct {
	ID          uuid.UUID       `json:"id"`
	PaystackRef string          `json:"paystack_ref"`
	BookingID   uuid.UUID       `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Payment) IsSettled() bool {
	return p.Status == PaymentSuccess
}

// MinorUnits converts the amount to the gateway's smallest currency unit.
func (p *Payment) MinorUnits() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NewPaymentReference returns a fresh external correlation key.
func NewPaymentReference() string {
	return "hb_" + uuid.NewString()
}
