// Package queue moves notification jobs through a Redis list: producers
// LPUSH, the worker BRPOPs and hands each job to the mailer.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/healthbook/internal/core/domain"
)

const (
	DefaultKey = "notifications:email"
	deadSuffix = ":dead"
)

type envelope struct {
	Job      domain.NotificationJob `json:"job"`
	Attempts int                    `json:"attempts"`
}

type RedisQueue struct {
	client redis.Cmdable
	key    string
}

func NewRedisQueue(client redis.Cmdable, key string) *RedisQueue {
	if key == "" {
		key = DefaultKey
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job domain.NotificationJob) error {
	return q.push(ctx, q.key, envelope{Job: job})
}

func (q *RedisQueue) push(ctx context.Context, key string, env envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	if err := q.client.LPush(ctx, key, string(payload)).Err(); err != nil {
		return fmt.Errorf("push notification to %s: %w", key, err)
	}
	return nil
}

func (q *RedisQueue) DeadLetterKey() string {
	return q.key + deadSuffix
}

// Len reports the number of queued jobs.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
