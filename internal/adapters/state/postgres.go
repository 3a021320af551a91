package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kakao-today-bot/internal/domain"
)

// Postgres хранит отметку единственной строкой в таблице sent_marks.
//
//	CREATE TABLE IF NOT EXISTS sent_marks (
//	    id         SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
//	    sent_date  DATE NOT NULL,
//	    dedupe_key TEXT NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres создаёт хранилище поверх пула подключений.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// Load читает единственную строку.
func (p *Postgres) Load(ctx context.Context) (domain.SentMark, bool, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	var mark domain.SentMark
	var sentDate time.Time
	err := p.pool.QueryRow(ctx,
		`SELECT sent_date, dedupe_key FROM sent_marks WHERE id = 1`,
	).Scan(&sentDate, &mark.DedupeKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SentMark{}, false, nil
		}
		return domain.SentMark{}, false, fmt.Errorf("чтение sent_marks: %w", err)
	}
	mark.Date = sentDate.Format("2006-01-02")
	return mark, true, nil
}

// Save перезаписывает строку целиком (upsert по фиксированному id).
func (p *Postgres) Save(ctx context.Context, mark domain.SentMark) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	_, err := p.pool.Exec(ctx,
		`INSERT INTO sent_marks (id, sent_date, dedupe_key)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET sent_date = EXCLUDED.sent_date, dedupe_key = EXCLUDED.dedupe_key`,
		mark.Date, mark.DedupeKey,
	)
	if err != nil {
		return fmt.Errorf("запись sent_marks: %w", err)
	}
	return nil
}

var _ domain.StateStore = (*Postgres)(nil)
