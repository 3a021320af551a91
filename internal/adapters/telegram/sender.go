package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/infra/metrics"
)

const mediaGroupLimit = 10

// Sender доставляет сообщения и медиагруппы в один чат через Bot API.
type Sender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewSender создаёт отправителя.
func NewSender(bot *tgbotapi.BotAPI, chatID int64) *Sender {
	return &Sender{bot: bot, chatID: chatID}
}

// SendText отправляет текст, при необходимости разрезав его на части.
func (s *Sender) SendText(ctx context.Context, text string) error {
	for _, part := range SplitMessage(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		msg := tgbotapi.NewMessage(s.chatID, part)
		_, err := s.bot.Send(msg)
		metrics.ObserveNetworkRequest("telegram", "send_message", start, err)
		if err != nil {
			metrics.SendErrorsTotal.Inc()
			return fmt.Errorf("sendMessage: %w", err)
		}
	}
	return nil
}

// SendPhotoBatch отправляет одну медиагруппу (не более 10 фото).
func (s *Sender) SendPhotoBatch(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if len(paths) > mediaGroupLimit {
		return fmt.Errorf("медиагруппа не может быть больше %d фото, получили %d", mediaGroupLimit, len(paths))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	media := make([]interface{}, 0, len(paths))
	for _, path := range paths {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(path)))
	}

	start := time.Now()
	group := tgbotapi.NewMediaGroup(s.chatID, media)
	_, err := s.bot.SendMediaGroup(group)
	metrics.ObserveNetworkRequest("telegram", "send_media_group", start, err)
	if err != nil {
		metrics.SendErrorsTotal.Inc()
		return fmt.Errorf("sendMediaGroup: %w", err)
	}
	return nil
}

var _ domain.Sender = (*Sender)(nil)
