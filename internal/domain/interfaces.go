package domain

import "context"

// FeedSource отдаёт карточки ленты и извлекает выбранный пост.
// Реализация прячет за собой слой рендеринга страницы (браузер).
type FeedSource interface {
	ListFeedCards(ctx context.Context) ([]FeedCard, error)
	ExtractPost(ctx context.Context, link string) (Post, error)
}

// ImageFetcher скачивает картинку по URL и возвращает локальный путь.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Sender доставляет сообщение и пачки фотографий в чат.
// SendPhotoBatch принимает не более 10 путей за вызов.
type Sender interface {
	SendText(ctx context.Context, text string) error
	SendPhotoBatch(ctx context.Context, paths []string) error
}

// StateStore читает и перезаписывает единственную запись SentMark.
// Load возвращает ok=false, если записи ещё нет.
type StateStore interface {
	Load(ctx context.Context) (mark SentMark, ok bool, err error)
	Save(ctx context.Context, mark SentMark) error
}

// PublishQueue — очередь задач на публикацию.
type PublishQueue interface {
	Enqueue(ctx context.Context, job PublishJob) error
	Pop(ctx context.Context) (PublishJob, error)
}
