package ports

import (
	"context"
	"time"

	"github.com/srgjo27/healthbook/internal/core/domain"
)

type RoomRequest struct {
	Name              string
	ExpiresAt         time.Time
	MaxParticipants   int
	EnableChat        bool
	EnableScreenshare bool
}

type Room struct {
	Name string
	URL  string
}

// RoomProvider provisions private video rooms.
type RoomProvider interface {
	CreateRoom(ctx context.Context, req RoomRequest) (*Room, error)
}

// NotificationQueue hands jobs to the asynchronous mail dispatcher.
type NotificationQueue interface {
	Enqueue(ctx context.Context, job domain.NotificationJob) error
}

type Mailer interface {
	Send(ctx context.Context, job domain.NotificationJob) error
}

type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type Transaction struct {
	Reference   string
	Status      string
	AmountMinor int64
	Currency    string
}

func (t *Transaction) Succeeded() bool {
	return t.Status == "success"
}

type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*Transaction, error)
}

// Cache is a TTL key-value store. Sweep drops expired entries and
// returns how many were removed.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Sweep(ctx context.Context) (int, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
