package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/infra/metrics"
	"kakao-today-bot/internal/usecase/dedup"
	"kakao-today-bot/internal/usecase/selection"
)

// Outcome — итог одного прогона.
type Outcome string

const (
	OutcomeDelivered        Outcome = "delivered"
	OutcomeSkippedNoPost    Outcome = "skipped_no_post"
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"
	OutcomeFailed           Outcome = "failed"
)

const photoBatchSize = 10

// Service реализует один прогон публикации: выбор → извлечение →
// гейт → сборка → доставка → отметка.
type Service struct {
	feed   domain.FeedSource
	images domain.ImageFetcher
	sender domain.Sender
	gate   *dedup.Gate
	loc    *time.Location
	log    zerolog.Logger
}

// NewService создаёт сервис публикации.
func NewService(feed domain.FeedSource, images domain.ImageFetcher, sender domain.Sender, gate *dedup.Gate, loc *time.Location, log zerolog.Logger) *Service {
	return &Service{feed: feed, images: images, sender: sender, gate: gate, loc: loc, log: log}
}

// Run выполняет один прогон. Ошибки выбора, извлечения и доставки
// фатальны для прогона и не трогают состояние; ошибки скачивания
// картинок изолируются поштучно.
func (s *Service) Run(ctx context.Context, mode domain.Mode) (Outcome, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := s.log.With().Str("run_id", runID).Logger()

	outcome, err := s.run(ctx, mode, logger)
	metrics.RunsTotal.WithLabelValues(string(outcome)).Inc()
	metrics.RunDurationSeconds.Observe(time.Since(start).Seconds())
	return outcome, err
}

func (s *Service) run(ctx context.Context, mode domain.Mode, logger zerolog.Logger) (Outcome, error) {
	now := time.Now().In(s.loc)

	cards, err := s.feed.ListFeedCards(ctx)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("карточки ленты: %w", err)
	}

	link, reason := selection.SelectBest(cards, now)
	metrics.SelectionReasonTotal.WithLabelValues(string(reason)).Inc()
	if reason == selection.ReasonNone {
		logger.Info().Int("cards", len(cards)).Msg("publish: подходящих ссылок нет, пропуск")
		return OutcomeSkippedNoPost, nil
	}
	logger.Info().Str("link", link).Str("reason", string(reason)).Msg("publish: пост выбран")

	post, err := s.feed.ExtractPost(ctx, link)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("извлечение поста %s: %w", link, err)
	}

	key := domain.DedupeKey(post)
	today := now.Format("2006-01-02")
	if !s.gate.ShouldSend(ctx, key, today) {
		logger.Info().Str("key", key).Str("date", today).Msg("publish: уже отправлено сегодня, пропуск")
		return OutcomeSkippedDuplicate, nil
	}

	if mode == domain.ModeFull || mode == domain.ModeImage {
		post.DownloadedPaths = s.fetchImages(ctx, post.ImageURLs, logger)
	}

	if err := s.deliver(ctx, post, mode); err != nil {
		return OutcomeFailed, fmt.Errorf("доставка: %w", err)
	}

	if err := s.gate.MarkSent(ctx, key, today); err != nil {
		return OutcomeFailed, err
	}
	logger.Info().Str("key", key).Int("images", len(post.DownloadedPaths)).Msg("publish: доставлено")
	return OutcomeDelivered, nil
}

// fetchImages скачивает картинки по одной; неудачи только логируются.
func (s *Service) fetchImages(ctx context.Context, urls []string, logger zerolog.Logger) []string {
	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		path, err := s.images.Fetch(ctx, u)
		if err != nil {
			metrics.ImageFetchErrorsTotal.Inc()
			logger.Warn().Err(err).Str("url", u).Msg("publish: картинка не скачана")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (s *Service) deliver(ctx context.Context, post domain.Post, mode domain.Mode) error {
	if mode == domain.ModeFull || mode == domain.ModeText {
		if msg := Compose(post); msg != "" {
			if err := s.sender.SendText(ctx, msg); err != nil {
				return fmt.Errorf("текст: %w", err)
			}
		}
	}

	if mode == domain.ModeFull || mode == domain.ModeImage {
		for _, batch := range chunkPaths(post.DownloadedPaths, photoBatchSize) {
			if err := s.sender.SendPhotoBatch(ctx, batch); err != nil {
				return fmt.Errorf("фото: %w", err)
			}
		}
	}
	return nil
}

func chunkPaths(paths []string, size int) [][]string {
	if size <= 0 || len(paths) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		chunks = append(chunks, paths[start:end])
	}
	return chunks
}
