package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"kakao-today-bot/internal/domain"
)

const redisStateKey = "kakao_today:last_sent"

// Redis хранит отметку одним ключом в Redis.
type Redis struct {
	client *redis.Client
}

// NewRedis создаёт Redis-хранилище.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Load читает отметку по ключу.
func (r *Redis) Load(ctx context.Context) (domain.SentMark, bool, error) {
	raw, err := r.client.Get(ctx, redisStateKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SentMark{}, false, nil
		}
		return domain.SentMark{}, false, fmt.Errorf("redis get: %w", err)
	}
	var mark domain.SentMark
	if err := json.Unmarshal(raw, &mark); err != nil {
		// битое значение равнозначно отсутствию записи
		return domain.SentMark{}, false, nil
	}
	return mark, true, nil
}

// Save перезаписывает отметку. TTL не ставим: запись одна и живёт
// до следующей успешной доставки.
func (r *Redis) Save(ctx context.Context, mark domain.SentMark) error {
	raw, err := json.Marshal(mark)
	if err != nil {
		return fmt.Errorf("кодирование отметки: %w", err)
	}
	if err := r.client.Set(ctx, redisStateKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

var _ domain.StateStore = (*Redis)(nil)
