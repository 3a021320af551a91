package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"kakao-today-bot/internal/adapters/bot"
	"kakao-today-bot/internal/infra/config"
	httpinfra "kakao-today-bot/internal/infra/http"
	"kakao-today-bot/internal/infra/log"
	"kakao-today-bot/internal/infra/metrics"
	"kakao-today-bot/internal/infra/queue"
)

// bot-gateway принимает команды пользователей и ставит задачи
// публикации в очередь. С вебхуком — через HTTP, без него — polling.
func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv).With().Str("component", "bot-gateway").Logger()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.TZ).Msg("bot-gateway: некорректная зона времени")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	jobs := queue.NewRedisPublishQueue(redisClient, cfg.Queues.Publish)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot-gateway: не удалось создать бота")
	}

	h := bot.NewHandler(botAPI, logger, jobs, loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telegram.WebhookURL != "" {
		runWebhook(ctx, cfg, h, logger)
		return
	}
	runPolling(ctx, botAPI, h, logger)
}

func runWebhook(ctx context.Context, cfg config.AppConfig, h *bot.Handler, logger zerolog.Logger) {
	srv := httpinfra.NewServer(logger)
	srv.Router.Post("/bot/webhook", func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("bot-gateway: HTTP сервер остановлен")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("bot-gateway: остановка")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func runPolling(ctx context.Context, botAPI *tgbotapi.BotAPI, h *bot.Handler, logger zerolog.Logger) {
	updCfg := tgbotapi.NewUpdate(0)
	updCfg.Timeout = 30
	updates := botAPI.GetUpdatesChan(updCfg)

	logger.Info().Msg("bot-gateway: polling запущен")
	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			logger.Info().Msg("bot-gateway: остановка")
			return
		case update := <-updates:
			h.HandleUpdate(ctx, update)
		}
	}
}
