package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kakao-today-bot/internal/domain"
	"kakao-today-bot/internal/infra/metrics"
)

// Client ходит в рендер-сервис: отдельный процесс с браузером, который
// открывает страницу канала и возвращает карточки и детали поста в JSON.
// Сам разбор разметки остаётся на стороне рендера.
type Client struct {
	baseURL    *url.URL
	postsURL   string
	kakaoBase  *url.URL
	httpClient *http.Client
}

// Option настраивает клиент.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout задаёт таймаут запросов.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

const defaultKakaoBase = "https://pf.kakao.com"

// New создаёт клиент рендер-сервиса. postsURL — страница ленты канала.
func New(baseURL, postsURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "http"
	}
	kakaoBase, err := url.Parse(defaultKakaoBase)
	if err != nil {
		return nil, fmt.Errorf("parse kakao base: %w", err)
	}
	client := &Client{
		baseURL:    parsed,
		postsURL:   postsURL,
		kakaoBase:  kakaoBase,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type cardPayload struct {
	Link      string `json:"link"`
	DateLabel string `json:"dateLabel"`
	Pinned    bool   `json:"pinned"`
}

type postPayload struct {
	URL       string   `json:"url"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	ImageURLs []string `json:"imageUrls"`
}

// ListFeedCards возвращает карточки ленты в порядке страницы.
// Относительные ссылки приводятся к абсолютным.
func (c *Client) ListFeedCards(ctx context.Context) ([]domain.FeedCard, error) {
	start := time.Now()
	var payload []cardPayload
	err := c.get(ctx, "/api/v1/cards", url.Values{"url": {c.postsURL}}, &payload)
	metrics.ObserveNetworkRequest("renderer", "list_cards", start, err)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.FeedCard, 0, len(payload))
	for _, p := range payload {
		cards = append(cards, domain.FeedCard{
			Link:      c.absolute(p.Link),
			DateLabel: p.DateLabel,
			Pinned:    p.Pinned,
		})
	}
	return cards, nil
}

// ExtractPost возвращает детали поста по абсолютной ссылке.
func (c *Client) ExtractPost(ctx context.Context, link string) (domain.Post, error) {
	start := time.Now()
	var payload postPayload
	err := c.get(ctx, "/api/v1/post", url.Values{"link": {link}}, &payload)
	metrics.ObserveNetworkRequest("renderer", "extract_post", start, err)
	if err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{
		URL:       payload.URL,
		Title:     payload.Title,
		Text:      payload.Text,
		ImageURLs: payload.ImageURLs,
	}
	if post.URL == "" {
		post.URL = link
	}
	return post, nil
}

func (c *Client) absolute(link string) string {
	if link == "" {
		return ""
	}
	ref, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return c.kakaoBase.ResolveReference(ref).String()
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := *c.baseURL
	target.Path = endpoint
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("renderer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("renderer %s: статус %d: %s", endpoint, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ domain.FeedSource = (*Client)(nil)
