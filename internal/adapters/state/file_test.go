package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kakao-today-bot/internal/domain"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFile(filepath.Join(t.TempDir(), "last_sent.json"))

	mark := domain.SentMark{Date: "2026-01-02", DedupeKey: "url:https://pf.kakao.com/_sIJCxj/1"}
	if err := store.Save(ctx, mark); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if !ok {
		t.Fatalf("ожидали сохранённую запись")
	}
	if got != mark {
		t.Fatalf("ожидали %+v, получили %+v", mark, got)
	}
}

func TestFileMissingIsEmptyState(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "absent.json"))
	_, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("отсутствие файла не должно быть ошибкой: %v", err)
	}
	if ok {
		t.Fatalf("ожидали пустое состояние")
	}
}

func TestFileCorruptIsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_sent.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("подготовка файла: %v", err)
	}
	_, ok, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("битый файл не должен быть ошибкой: %v", err)
	}
	if ok {
		t.Fatalf("битый файл должен трактоваться как пустое состояние")
	}
}

func TestFileSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewFile(filepath.Join(t.TempDir(), "last_sent.json"))

	if err := store.Save(ctx, domain.SentMark{Date: "2026-01-01", DedupeKey: "url:/old"}); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	next := domain.SentMark{Date: "2026-01-02", DedupeKey: "url:/new"}
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("ожидали запись, получили ok=%v err=%v", ok, err)
	}
	if got != next {
		t.Fatalf("ожидали полную перезапись, получили %+v", got)
	}
}
