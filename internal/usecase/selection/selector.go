package selection

import (
	"time"

	"kakao-today-bot/internal/domain"
)

// Reason объясняет, почему выбрана именно эта ссылка.
type Reason string

const (
	ReasonToday  Reason = "today"
	ReasonPinned Reason = "pinned"
	ReasonLatest Reason = "latest"
	ReasonNone   Reason = "none"
)

// SelectBest выбирает одну каноничную ссылку из ленты.
// Приоритет: сегодняшняя карточка, затем закреплённая, затем первая
// (лента считается отсортированной от новых к старым). Карточка без
// ссылки не попадает ни в одну корзину. Корзины не взаимоисключающие:
// закреплённая сегодняшняя карточка участвует в обеих.
func SelectBest(cards []domain.FeedCard, ref time.Time) (string, Reason) {
	var today, pinned, any []string

	for _, card := range cards {
		if card.Link == "" {
			continue
		}
		any = append(any, card.Link)
		if IsToday(card.DateLabel, ref) {
			today = append(today, card.Link)
		}
		if card.Pinned {
			pinned = append(pinned, card.Link)
		}
	}

	switch {
	case len(today) > 0:
		return today[0], ReasonToday
	case len(pinned) > 0:
		return pinned[0], ReasonPinned
	case len(any) > 0:
		return any[0], ReasonLatest
	}
	return "", ReasonNone
}
