package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/infra/metrics"
)

// Fetcher скачивает картинки в локальный каталог. Имя файла получает
// порядковый номер и расширение, угаданное по Content-Type.
type Fetcher struct {
	dir        string
	httpClient *http.Client
	seq        atomic.Int64
}

// NewFetcher создаёт загрузчик с каталогом назначения.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		dir:        dir,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch скачивает одну картинку и возвращает путь к файлу.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()
	path, err := f.fetch(ctx, rawURL)
	metrics.ObserveNetworkRequest("images", "fetch", start, err)
	return path, err
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("скачивание %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("скачивание %s: статус %d", rawURL, resp.StatusCode)
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("каталог загрузок: %w", err)
	}

	n := f.seq.Add(1)
	path := filepath.Join(f.dir, fmt.Sprintf("img_%02d%s", n, extFromContentType(resp.Header.Get("Content-Type"))))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("создание файла: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("запись %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("закрытие %s: %w", path, err)
	}
	return path, nil
}

// extFromContentType — грубое сопоставление типа и расширения,
// по умолчанию jpg.
func extFromContentType(ct string) string {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "gif"):
		return ".gif"
	}
	return ".jpg"
}

var _ domain.ImageFetcher = (*Fetcher)(nil)
