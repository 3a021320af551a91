package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kakao-today-bot/internal/domain"
)

// RedisPublishQueue реализует очередь задач на публикацию на базе Redis lists.
type RedisPublishQueue struct {
	client *redis.Client
	key    string
}

// NewRedisPublishQueue создаёт очередь по указанному ключу.
func NewRedisPublishQueue(client *redis.Client, key string) *RedisPublishQueue {
	return &RedisPublishQueue{client: client, key: key}
}

// Enqueue публикует задачу в очередь.
func (q *RedisPublishQueue) Enqueue(ctx context.Context, job domain.PublishJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}
	return nil
}

// Pop блокирующе читает задачу из очереди.
func (q *RedisPublishQueue) Pop(ctx context.Context) (domain.PublishJob, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.PublishJob{}, err
		}

		res, err := q.client.BRPop(ctx, time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					return domain.PublishJob{}, ctx.Err()
				}
				continue
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			return domain.PublishJob{}, err
		}
		if len(res) != 2 {
			return domain.PublishJob{}, errors.New("redis queue: неожиданный ответ")
		}

		var job domain.PublishJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return domain.PublishJob{}, fmt.Errorf("unmarshal job: %w", err)
		}
		return job, nil
	}
}

var _ domain.PublishQueue = (*RedisPublishQueue)(nil)
