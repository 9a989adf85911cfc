package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

// Consumer applies one side effect of a booking.finalized event. Consume
// must be safe to call again for the same event after it failed.
type Consumer interface {
	Name() string
	Consume(ctx context.Context, event *domain.OutboxEvent) error
}

type FinalizeConfig struct {
	ClaimLease    time.Duration
	RelayInterval time.Duration
	MaxAttempts   int
	BatchSize     int
}

func (c FinalizeConfig) withDefaults() FinalizeConfig {
	if c.ClaimLease <= 0 {
		c.ClaimLease = 5 * time.Minute
	}
	if c.RelayInterval <= 0 {
		c.RelayInterval = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 10
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	return c
}

var errConsumerBusy = errors.New("consumer claimed elsewhere")

// FinalizeService turns a successful charge into a durable
// booking.finalized event and drives its consumers.
type FinalizeService struct {
	payments  ports.PaymentRepository
	outbox    ports.OutboxRepository
	consumers []Consumer
	cfg       FinalizeConfig
	logger    *zap.Logger
}

func NewFinalizeService(
	payments ports.PaymentRepository,
	outbox ports.OutboxRepository,
	consumers []Consumer,
	cfg FinalizeConfig,
	logger *zap.Logger,
) *FinalizeService {
	return &FinalizeService{
		payments:  payments,
		outbox:    outbox,
		consumers: consumers,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// HandleChargeSuccess records the finalize event for reference and
// dispatches it. An unknown reference is acknowledged without effect.
func (s *FinalizeService) HandleChargeSuccess(ctx context.Context, reference string) error {
	payment, err := s.payments.GetByReference(ctx, reference)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		s.logger.Warn("No payment for charge reference, acknowledging",
			zap.String("reference", reference))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup payment %s: %w", reference, err)
	}

	event := domain.NewBookingFinalizedEvent(payment)
	created, err := s.outbox.Append(ctx, event)
	if err != nil {
		return fmt.Errorf("record finalize event for %s: %w", reference, err)
	}

	if !created {
		s.logger.Info("Finalize event already recorded, replaying",
			zap.String("reference", reference),
			zap.String("event_id", event.ID.String()))
	}

	s.Dispatch(ctx, event)
	return nil
}

// Dispatch runs every consumer that has not completed the event yet and
// reports whether the event is now fully processed.
func (s *FinalizeService) Dispatch(ctx context.Context, event *domain.OutboxEvent) bool {
	var failures []string
	busy := false

	for _, c := range s.consumers {
		err := s.runConsumer(ctx, event, c)
		switch {
		case err == nil:
		case errors.Is(err, errConsumerBusy):
			busy = true
		default:
			s.logger.Error("Finalize consumer failed",
				zap.String("consumer", c.Name()),
				zap.String("event_id", event.ID.String()),
				zap.String("reference", event.Reference),
				zap.Error(err))
			failures = append(failures, c.Name()+": "+err.Error())
		}
	}

	if len(failures) > 0 {
		if err := s.outbox.RecordFailure(ctx, event.ID, strings.Join(failures, "; ")); err != nil {
			s.logger.Error("Failed to record outbox failure",
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
		}
		return false
	}
	if busy {
		return false
	}

	if err := s.outbox.MarkProcessed(ctx, event.ID); err != nil {
		s.logger.Error("Failed to mark outbox event processed",
			zap.String("event_id", event.ID.String()),
			zap.Error(err))
		return false
	}
	return true
}

func (s *FinalizeService) runConsumer(ctx context.Context, event *domain.OutboxEvent, c Consumer) error {
	claimed, err := s.outbox.Claim(ctx, event.ID, c.Name(), s.cfg.ClaimLease)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}

	if !claimed {
		done, err := s.outbox.IsCompleted(ctx, event.ID, c.Name())
		if err != nil {
			return fmt.Errorf("check completion: %w", err)
		}
		if done {
			return nil
		}
		return errConsumerBusy
	}

	if err := c.Consume(ctx, event); err != nil {
		if rerr := s.outbox.Release(ctx, event.ID, c.Name()); rerr != nil {
			s.logger.Error("Failed to release consumer claim",
				zap.String("consumer", c.Name()),
				zap.String("event_id", event.ID.String()),
				zap.Error(rerr))
		}
		return err
	}

	if err := s.outbox.Complete(ctx, event.ID, c.Name()); err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	return nil
}

// ProcessPending re-dispatches unfinished events and returns how many
// finished in this pass.
func (s *FinalizeService) ProcessPending(ctx context.Context) (int, error) {
	events, err := s.outbox.ListPending(ctx, s.cfg.MaxAttempts, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending outbox events: %w", err)
	}

	done := 0
	for i := range events {
		if s.Dispatch(ctx, &events[i]) {
			done++
		}
	}
	return done, nil
}

func (s *FinalizeService) RunOutboxRelay(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RelayInterval)
	defer ticker.Stop()

	s.logger.Info("Outbox relay started", zap.Duration("interval", s.cfg.RelayInterval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Outbox relay stopped")
			return
		case <-ticker.C:
			done, err := s.ProcessPending(ctx)
			if err != nil {
				s.logger.Error("Outbox relay pass failed", zap.Error(err))
				continue
			}
			if done > 0 {
				s.logger.Info("Outbox relay finished events", zap.Int("count", done))
			}
		}
	}
}
