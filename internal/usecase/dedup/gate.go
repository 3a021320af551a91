package dedup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"kakao-today-bot/internal/domain"
)

// Gate решает, отправлялся ли пост уже сегодня.
// Хранилище инжектируется, чтобы тесты подменяли его in-memory заглушкой.
type Gate struct {
	store domain.StateStore
	log   zerolog.Logger
}

// NewGate создаёт гейт дедупликации.
func NewGate(store domain.StateStore, log zerolog.Logger) *Gate {
	return &Gate{store: store, log: log}
}

// ShouldSend возвращает false только если сохранённая запись совпадает
// и по дню, и по ключу. Ошибка чтения трактуется как отсутствие записи:
// лучше отправить дважды, чем молча не отправить.
func (g *Gate) ShouldSend(ctx context.Context, key, today string) bool {
	mark, ok, err := g.store.Load(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("dedup: состояние не прочитано, считаем пустым")
		return true
	}
	if !ok {
		return true
	}
	return mark.Date != today || mark.DedupeKey != key
}

// MarkSent безусловно перезаписывает запись. Вызывается только после
// полностью успешной доставки.
func (g *Gate) MarkSent(ctx context.Context, key, today string) error {
	mark := domain.SentMark{Date: today, DedupeKey: key}
	if err := g.store.Save(ctx, mark); err != nil {
		return fmt.Errorf("сохранение отметки отправки: %w", err)
	}
	return nil
}
