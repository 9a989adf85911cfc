package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"go.uber.org/zap"
)

type WorkerConfig struct {
	PollTimeout time.Duration
	MaxAttempts int
}

// Worker drains the queue into the mailer. Failed jobs are pushed back
// until MaxAttempts, then parked on the dead-letter list.
type Worker struct {
	queue  *RedisQueue
	mailer ports.Mailer
	cfg    WorkerConfig
	logger *zap.Logger
}

func NewWorker(queue *RedisQueue, mailer ports.Mailer, cfg WorkerConfig, logger *zap.Logger) *Worker {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Worker{queue: queue, mailer: mailer, cfg: cfg, logger: logger}
}

func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Notification worker started", zap.String("queue", w.queue.key))

	for {
		if ctx.Err() != nil {
			w.logger.Info("Notification worker stopped")
			return
		}

		if _, err := w.ProcessOne(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("Notification worker poll failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

// ProcessOne waits up to PollTimeout for a job and delivers it. It
// reports whether a job was taken off the queue.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	res, err := w.queue.client.BRPop(ctx, w.cfg.PollTimeout, w.queue.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
		w.logger.Error("Dropping malformed notification", zap.String("payload", res[1]), zap.Error(err))
		return true, nil
	}

	if err := w.mailer.Send(ctx, env.Job); err != nil {
		w.retry(ctx, env, err)
		return true, nil
	}
	return true, nil
}

func (w *Worker) retry(ctx context.Context, env envelope, cause error) {
	env.Attempts++

	target := w.queue.key
	if env.Attempts >= w.cfg.MaxAttempts {
		target = w.queue.DeadLetterKey()
	}

	w.logger.Warn("Notification delivery failed",
		zap.String("to", env.Job.To),
		zap.Int("attempts", env.Attempts),
		zap.String("requeued_to", target),
		zap.Error(cause))

	if err := w.queue.push(ctx, target, env); err != nil {
		w.logger.Error("Failed to requeue notification", zap.String("to", env.Job.To), zap.Error(err))
	}
}
