package selection

import (
	"testing"
	"time"

	"kakao-today-bot/internal/domain"
)

func TestSelectBestTodayBeatsPinned(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	cards := []domain.FeedCard{
		{Link: "/a", DateLabel: "2025.12.20."},
		{Link: "/b", DateLabel: "5분 전"},
		{Link: "/c", DateLabel: "3일 전", Pinned: true},
	}
	link, reason := SelectBest(cards, ref)
	if link != "/b" || reason != ReasonToday {
		t.Fatalf("ожидали (/b, today), получили (%q, %q)", link, reason)
	}
}

func TestSelectBestPinnedFallback(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	cards := []domain.FeedCard{
		{Link: "/a", DateLabel: "3일 전", Pinned: true},
		{Link: "/b"},
	}
	link, reason := SelectBest(cards, ref)
	if link != "/a" || reason != ReasonPinned {
		t.Fatalf("ожидали (/a, pinned), получили (%q, %q)", link, reason)
	}
}

func TestSelectBestLatestFallback(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	cards := []domain.FeedCard{
		{Link: "/first", DateLabel: "2일 전"},
		{Link: "/second", DateLabel: "3일 전"},
	}
	link, reason := SelectBest(cards, ref)
	if link != "/first" || reason != ReasonLatest {
		t.Fatalf("ожидали (/first, latest), получили (%q, %q)", link, reason)
	}
}

func TestSelectBestNoLinks(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	cards := []domain.FeedCard{
		{DateLabel: "방금"},
		{DateLabel: "3일 전", Pinned: true},
	}
	link, reason := SelectBest(cards, ref)
	if link != "" || reason != ReasonNone {
		t.Fatalf("ожидали пустой выбор, получили (%q, %q)", link, reason)
	}
}

// Карточка без ссылки не должна занимать место в корзинах: сегодняшняя
// карточка без ссылки не перебивает закреплённую со ссылкой.
func TestSelectBestSkipsLinklessCards(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	cards := []domain.FeedCard{
		{DateLabel: "방금"},
		{Link: "/pinned", DateLabel: "2025.11.01.", Pinned: true},
	}
	link, reason := SelectBest(cards, ref)
	if link != "/pinned" || reason != ReasonPinned {
		t.Fatalf("ожидали (/pinned, pinned), получили (%q, %q)", link, reason)
	}
}
