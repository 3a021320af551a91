package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
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
	httpinfra "kakao-today-bot/internal/infra/http"
	"kakao-today-bot/internal/infra/log"
	"kakao-today-bot/internal/infra/metrics"
	"kakao-today-bot/internal/infra/queue"
	"kakao-today-bot/internal/usecase/dedup"
	"kakao-today-bot/internal/usecase/publish"
)

// worker исполняет задачи публикации, которые бот ставит в очередь.
func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv).With().Str("component", "worker").Logger()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.TZ).Msg("worker: некорректная зона времени")
	}

	ctx, stop := signalContext()
	defer stop()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	jobs := queue.NewRedisPublishQueue(redisClient, cfg.Queues.Publish)

	feed, err := renderer.New(cfg.Kakao.RendererURL, cfg.Kakao.PostsURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: не удалось создать клиент рендера")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: не удалось создать бота")
	}
	sender := telegram.NewSender(botAPI, cfg.Telegram.ChatID)

	store, cleanup := buildStateStore(cfg, logger, redisClient)
	defer cleanup()
	gate := dedup.NewGate(store, logger)

	srv := httpinfra.NewServer(logger)
	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logger.Error().Err(err).Msg("worker: HTTP сервер остановлен")
		}
	}()

	logger.Info().Str("queue", cfg.Queues.Publish).Msg("worker: запущен")
	for {
		job, err := jobs.Pop(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info().Msg("worker: остановка")
				return
			}
			logger.Error().Err(err).Msg("worker: ошибка чтения очереди")
			continue
		}
		runJob(ctx, cfg, job, feed, sender, gate, loc, logger)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// runJob дожидается назначенного времени и выполняет прогон.
// Каталог загрузок у каждой задачи свой, чтобы пачки не смешивались.
func runJob(ctx context.Context, cfg config.AppConfig, job domain.PublishJob, feed domain.FeedSource, sender domain.Sender, gate *dedup.Gate, loc *time.Location, logger zerolog.Logger) {
	jobLog := logger.With().Str("job_id", job.ID).Logger()

	if wait := time.Until(job.RunAt); wait > 0 {
		jobLog.Info().Dur("wait", wait).Msg("worker: задача отложена")
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	fetcher := images.NewFetcher(filepath.Join(cfg.DownloadDir, job.ID))
	service := publish.NewService(feed, fetcher, sender, gate, loc, jobLog)

	outcome, err := service.Run(ctx, job.Mode)
	if err != nil {
		jobLog.Error().Err(err).Str("outcome", string(outcome)).Msg("worker: задача завершилась ошибкой")
		return
	}
	jobLog.Info().Str("outcome", string(outcome)).Msg("worker: задача выполнена")
}

func buildStateStore(cfg config.AppConfig, logger zerolog.Logger, redisClient *redis.Client) (domain.StateStore, func()) {
	switch cfg.State.Backend {
	case "file":
		return state.NewFile(cfg.State.File), func() {}
	case "redis":
		return state.NewRedis(redisClient), func() {}
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
