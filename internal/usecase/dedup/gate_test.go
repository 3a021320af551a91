package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"kakao-today-bot/internal/adapters/state"
)

func TestGateIdempotence(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(state.NewMemory(), zerolog.Nop())

	if !gate.ShouldSend(ctx, "url:https://pf.kakao.com/_sIJCxj/1", "2026-01-02") {
		t.Fatalf("первый прогон должен разрешить отправку")
	}
	if err := gate.MarkSent(ctx, "url:https://pf.kakao.com/_sIJCxj/1", "2026-01-02"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if gate.ShouldSend(ctx, "url:https://pf.kakao.com/_sIJCxj/1", "2026-01-02") {
		t.Fatalf("повторная отправка в тот же день должна быть запрещена")
	}
}

func TestGateDateRollover(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(state.NewMemory(), zerolog.Nop())

	if err := gate.MarkSent(ctx, "url:/p/1", "2026-01-02"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if !gate.ShouldSend(ctx, "url:/p/1", "2026-01-03") {
		t.Fatalf("наступил новый день — отправка должна быть разрешена")
	}
}

func TestGateDifferentKeySameDay(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(state.NewMemory(), zerolog.Nop())

	if err := gate.MarkSent(ctx, "url:/p/1", "2026-01-02"); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if !gate.ShouldSend(ctx, "url:/p/2", "2026-01-02") {
		t.Fatalf("другой пост в тот же день должен отправляться")
	}
}

func TestGatePermissiveOnReadFailure(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemory()
	store.LoadErr = errors.New("файл повреждён")
	gate := NewGate(store, zerolog.Nop())

	if !gate.ShouldSend(ctx, "url:/p/1", "2026-01-02") {
		t.Fatalf("ошибка чтения состояния не должна блокировать отправку")
	}
}

func TestGateMarkSentPropagatesSaveError(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemory()
	store.SaveErr = errors.New("диск переполнен")
	gate := NewGate(store, zerolog.Nop())

	if err := gate.MarkSent(ctx, "url:/p/1", "2026-01-02"); err == nil {
		t.Fatalf("ожидали ошибку сохранения")
	}
}
