package selection

import (
	"testing"
	"time"
)

func kst(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("не удалось загрузить зону: %v", err)
	}
	return loc
}

func TestIsTodayRelativeMarkers(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))

	todayLabels := []string{"방금", "5분 전", "1시간 전", "12시간 전", "오늘"}
	for _, label := range todayLabels {
		if !IsToday(label, ref) {
			t.Errorf("метка %q должна считаться сегодняшней", label)
		}
	}

	notToday := []string{"1일 전", "3일 전", "어제", ""}
	for _, label := range notToday {
		if IsToday(label, ref) {
			t.Errorf("метка %q не должна считаться сегодняшней", label)
		}
	}
}

func TestIsTodayAbsoluteDate(t *testing.T) {
	loc := kst(t)
	label := "2026.01.02."

	if !IsToday(label, time.Date(2026, 1, 2, 9, 30, 0, 0, loc)) {
		t.Fatalf("дата %q должна совпасть с 2026-01-02", label)
	}
	if IsToday(label, time.Date(2026, 1, 3, 9, 30, 0, 0, loc)) {
		t.Fatalf("дата %q не должна совпасть с 2026-01-03", label)
	}
}

func TestIsTodayWhitespaceOnly(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	if IsToday("   \n ", ref) {
		t.Fatalf("пустая метка не должна считаться сегодняшней")
	}
}

// Порядок правил повторяет исходное поведение: маркер "오늘" побеждает,
// даже если рядом встречается счётчик дней.
func TestIsTodayRulePrecedence(t *testing.T) {
	ref := time.Date(2026, 1, 2, 12, 0, 0, 0, kst(t))
	if !IsToday("오늘 3일 전", ref) {
		t.Fatalf("маркер свежести должен иметь приоритет над счётчиком дней")
	}
}
