package state

import (
	"context"
	"sync"

	"kakao-today-bot/internal/domain"
)

// Memory хранит отметку в памяти. Используется в тестах вместо
// долговременного хранилища.
type Memory struct {
	mu   sync.Mutex
	mark domain.SentMark
	ok   bool

	LoadErr error
	SaveErr error
}

// NewMemory создаёт пустое хранилище.
func NewMemory() *Memory {
	return &Memory{}
}

// Load возвращает текущую отметку.
func (m *Memory) Load(_ context.Context) (domain.SentMark, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.SentMark{}, false, m.LoadErr
	}
	return m.mark, m.ok, nil
}

// Save перезаписывает отметку.
func (m *Memory) Save(_ context.Context, mark domain.SentMark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mark = mark
	m.ok = true
	return nil
}

var _ domain.StateStore = (*Memory)(nil)
