package publish

import (
	"strings"

	"kakao-today-bot/internal/domain"
)

// Compose формирует текст сообщения из поста. Чистая функция:
// заголовок с маркером, затем тело, затем ссылка; пустые секции
// опускаются, секции разделяются пустой строкой.
func Compose(post domain.Post) string {
	var sections []string

	if title := strings.TrimSpace(post.Title); title != "" {
		sections = append(sections, "📌 "+title)
	}
	if text := strings.TrimSpace(post.Text); text != "" {
		sections = append(sections, text)
	}
	if url := strings.TrimSpace(post.URL); url != "" {
		sections = append(sections, "🔗 "+url)
	}

	return strings.Join(sections, "\n\n")
}
