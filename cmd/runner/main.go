package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"kakao-today-bot/internal/adapters/images"
	"kakao-today-bot/internal/adapters/renderer"
	"kakao-today-bot/internal/adapters/state"
	"kakao-today-bot/internal/adapters/telegram"
	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/infra/config"
	"kakao-today-bot/internal/infra/db"
	"kakao-today-bot/internal/infra/log"
	"kakao-today-bot/internal/infra/metrics"
	"kakao-today-bot/internal/usecase/dedup"
	"kakao-today-bot/internal/usecase/publish"
)

// runner выполняет ровно один прогон публикации и завершает процесс.
// Периодичность обеспечивает внешний планировщик (cron).
func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv).With().Str("component", "runner").Logger()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	mode, ok := domain.ParseMode(cfg.Mode)
	if !ok {
		logger.Fatal().Str("mode", cfg.Mode).Msg("runner: неизвестный режим")
	}

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.TZ).Msg("runner: некорректная зона времени")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed, err := renderer.New(cfg.Kakao.RendererURL, cfg.Kakao.PostsURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("runner: не удалось создать клиент рендера")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("runner: не удалось создать бота")
	}
	sender := telegram.NewSender(botAPI, cfg.Telegram.ChatID)

	store, cleanup := buildStateStore(cfg, logger)
	defer cleanup()

	gate := dedup.NewGate(store, logger)
	fetcher := images.NewFetcher(cfg.DownloadDir)
	service := publish.NewService(feed, fetcher, sender, gate, loc, logger)

	outcome, err := service.Run(ctx, mode)
	if err != nil {
		logger.Fatal().Err(err).Str("outcome", string(outcome)).Msg("runner: прогон завершился ошибкой")
	}
	logger.Info().Str("outcome", string(outcome)).Msg("runner: прогон завершён")
	os.Exit(0)
}

// buildStateStore выбирает хранилище отметки по конфигу.
func buildStateStore(cfg config.AppConfig, logger zerolog.Logger) (domain.StateStore, func()) {
	switch cfg.State.Backend {
	case "file":
		return state.NewFile(cfg.State.File), func() {}
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return state.NewRedis(client), func() { _ = client.Close() }
	case "postgres":
		pool, err := db.Connect(cfg.PGDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("нет подключения к БД")
		}
		return state.NewPostgres(pool), pool.Close
	}
	logger.Fatal().Str("backend", cfg.State.Backend).Msg("неизвестный backend состояния")
	return nil, nil
}
