package domain

import "time"

// FeedCard описывает одну карточку в ленте сообщений канала.
// Карточки живут только в рамках одного прогона и нигде не сохраняются.
type FeedCard struct {
	Link      string
	DateLabel string
	Pinned    bool
}

// Post представляет извлечённый пост канала.
type Post struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Text            string   `json:"text"`
	ImageURLs       []string `json:"imageUrls"`
	DownloadedPaths []string `json:"-"`
}

// SentMark — единственная персистентная запись: что и в какой день уже отправлено.
// Новая успешная доставка полностью перезаписывает запись.
type SentMark struct {
	Date      string `json:"date"`
	DedupeKey string `json:"dedupeKey"`
}

// Mode задаёт состав отправки.
type Mode string

const (
	ModeFull  Mode = "full"
	ModeText  Mode = "text"
	ModeImage Mode = "image"
)

// ParseMode разбирает режим отправки, пустая строка означает full.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeFull, "":
		return ModeFull, true
	case ModeText:
		return ModeText, true
	case ModeImage:
		return ModeImage, true
	}
	return "", false
}

// PublishJob — задача на публикацию, которую бот ставит в очередь.
type PublishJob struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	RunAt       time.Time `json:"run_at"`
	RequestedBy int64     `json:"requested_by"`
}
