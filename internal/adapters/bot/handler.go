package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/usecase/schedule"
)

const helpText = "👋 명령어 안내\n" +
	"/menu            : 즉시 전송(텍스트+이미지)\n" +
	"/preview         : 즉시 전송(텍스트만)\n" +
	"/image           : 즉시 전송(이미지만)\n" +
	"/send <초|HH:MM>  : 예약 전송(KST)\n" +
	"  예) /send 10\n" +
	"  예) /send 12:30\n"

// Handler обслуживает команды бота. Сам бот ничего не скрапит:
// команды превращаются в задачи очереди, которые исполняет воркер.
type Handler struct {
	bot  *tgbotapi.BotAPI
	log  zerolog.Logger
	jobs domain.PublishQueue
	loc  *time.Location
}

// NewHandler создаёт обработчик.
func NewHandler(bot *tgbotapi.BotAPI, log zerolog.Logger, jobs domain.PublishQueue, loc *time.Location) *Handler {
	return &Handler{bot: bot, log: log, jobs: jobs, loc: loc}
}

// HandleUpdate обрабатывает входящий апдейт.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	h.handleMessage(ctx, upd.Message)
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		h.reply(msg.Chat.ID, helpText)
	case strings.HasPrefix(text, "/menu"):
		h.enqueueNow(ctx, msg, domain.ModeFull, "🚀 즉시 전송(텍스트+이미지) 예약됨")
	case strings.HasPrefix(text, "/preview"):
		h.enqueueNow(ctx, msg, domain.ModeText, "📝 텍스트만 전송 예약됨")
	case strings.HasPrefix(text, "/image"):
		h.enqueueNow(ctx, msg, domain.ModeImage, "🖼️ 이미지만 전송 예약됨")
	case strings.HasPrefix(text, "/send"):
		arg := strings.TrimSpace(strings.TrimPrefix(text, "/send"))
		h.handleSend(ctx, msg, arg)
	default:
		h.reply(msg.Chat.ID, "알 수 없는 명령어입니다. /help 를 확인하세요.")
	}
}

func (h *Handler) handleSend(ctx context.Context, msg *tgbotapi.Message, arg string) {
	if arg == "" {
		h.reply(msg.Chat.ID, "사용법: /send <초|HH:MM>\n예: /send 10 또는 /send 12:30")
		return
	}
	now := time.Now().In(h.loc)
	delay, err := schedule.ParseDelay(arg, now)
	if err != nil {
		h.reply(msg.Chat.ID, "시간 형식이 올바르지 않습니다.\n예: /send 10 또는 /send 12:30")
		return
	}

	if err := h.enqueue(ctx, msg, domain.ModeFull, now.Add(delay)); err != nil {
		return
	}
	h.reply(msg.Chat.ID, fmt.Sprintf("⏳ 예약 완료: %s (약 %d초 후 전송)", arg, int(delay.Seconds())))
}

func (h *Handler) enqueueNow(ctx context.Context, msg *tgbotapi.Message, mode domain.Mode, ack string) {
	if err := h.enqueue(ctx, msg, mode, time.Now().In(h.loc)); err != nil {
		return
	}
	h.reply(msg.Chat.ID, ack)
}

func (h *Handler) enqueue(ctx context.Context, msg *tgbotapi.Message, mode domain.Mode, runAt time.Time) error {
	var requestedBy int64
	if msg.From != nil {
		requestedBy = msg.From.ID
	}
	job := domain.PublishJob{
		ID:          uuid.NewString(),
		Mode:        mode,
		RunAt:       runAt,
		RequestedBy: requestedBy,
	}
	if err := h.jobs.Enqueue(ctx, job); err != nil {
		h.log.Error().Err(err).Str("job_id", job.ID).Msg("bot: задача не поставлена в очередь")
		h.reply(msg.Chat.ID, "⚠️ 작업을 등록하지 못했습니다. 잠시 후 다시 시도하세요.")
		return err
	}
	h.log.Info().Str("job_id", job.ID).Str("mode", string(mode)).Time("run_at", runAt).Msg("bot: задача поставлена")
	return nil
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error().Err(err).Int64("chat", chatID).Msg("bot: не удалось ответить")
	}
}
