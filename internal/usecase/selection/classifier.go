package selection

import (
	"regexp"
	"strings"
	"time"
)

// verdict — результат срабатывания правила.
type verdict int

const (
	verdictToday verdict = iota
	verdictNotToday
)

// labelRule — одно правило классификации метки даты.
// Правила проверяются строго по порядку, побеждает первое совпавшее.
type labelRule struct {
	match   func(label string, ref time.Time) bool
	verdict verdict
}

var absoluteDateRe = regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})\.`)

// Метки вида "방금", "5분 전", "2시간 전", "오늘" считаются сегодняшними.
// "N일 전" — явное "не сегодня"; порядок правил повторяет исходное поведение
// ленты: маркеры свежести старше по приоритету, чем счётчик дней.
var labelRules = []labelRule{
	{match: containsAny("방금", "분 전", "시간 전", "오늘"), verdict: verdictToday},
	{match: matchesReferenceDate, verdict: verdictToday},
	{match: containsAny("일 전"), verdict: verdictNotToday},
}

// IsToday решает, обозначает ли метка даты карточки сегодняшний день
// в календаре референсного времени. Нераспознанная метка — не сегодня.
func IsToday(label string, ref time.Time) bool {
	t := strings.TrimSpace(label)
	if t == "" {
		return false
	}
	for _, rule := range labelRules {
		if rule.match(t, ref) {
			return rule.verdict == verdictToday
		}
	}
	return false
}

func containsAny(markers ...string) func(string, time.Time) bool {
	return func(label string, _ time.Time) bool {
		for _, m := range markers {
			if strings.Contains(label, m) {
				return true
			}
		}
		return false
	}
}

// matchesReferenceDate сравнивает абсолютную дату "YYYY.MM.DD." с календарной
// датой референсного времени. Метка считается уже локальной, зона не конвертируется.
func matchesReferenceDate(label string, ref time.Time) bool {
	m := absoluteDateRe.FindStringSubmatch(label)
	if m == nil {
		return false
	}
	y, mo, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
	return y == ref.Year() && time.Month(mo) == ref.Month() && d == ref.Day()
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
