package schedule

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDelay возвращается при нераспознанном аргументе /send.
var ErrInvalidDelay = errors.New("некорректный формат времени")

var (
	secondsRe = regexp.MustCompile(`^\d+$`)
	clockRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseDelay разбирает аргумент отложенной отправки.
// Поддерживаются два вида: "10" — через 10 секунд, "12:30" — ближайшие
// 12:30 в зоне времени now (если уже прошло — завтра).
func ParseDelay(arg string, now time.Time) (time.Duration, error) {
	if secondsRe.MatchString(arg) {
		sec, err := strconv.Atoi(arg)
		if err != nil {
			return 0, ErrInvalidDelay
		}
		return time.Duration(sec) * time.Second, nil
	}

	m := clockRe.FindStringSubmatch(arg)
	if m == nil {
		return 0, ErrInvalidDelay
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return 0, ErrInvalidDelay
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now), nil
}
