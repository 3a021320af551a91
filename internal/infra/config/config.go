package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"Asia/Seoul"`
	Port   int    `envconfig:"PORT" default:"8080"`
	Mode   string `envconfig:"MODE" default:"full"`

	Telegram struct {
		Token      string `envconfig:"TG_BOT_TOKEN"`
		ChatID     int64  `envconfig:"TG_CHAT_ID"`
		WebhookURL string `envconfig:"TG_WEBHOOK_URL"`
	} `envconfig:""`

	Kakao struct {
		PostsURL    string `envconfig:"KAKAO_POSTS_URL" default:"https://pf.kakao.com/_sIJCxj/posts"`
		RendererURL string `envconfig:"RENDERER_URL" default:"http://localhost:9222"`
	} `envconfig:""`

	State struct {
		Backend string `envconfig:"STATE_BACKEND" default:"file"`
		File    string `envconfig:"STATE_FILE" default:"last_sent.json"`
	} `envconfig:""`

	DownloadDir string `envconfig:"DOWNLOAD_DIR" default:"downloads"`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Queues struct {
		Publish string `envconfig:"PUBLISH_QUEUE_KEY" default:"publish_jobs"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
