package renderer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, "https://pf.kakao.com/_sIJCxj/posts", WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("не удалось создать клиент: %v", err)
	}
	return client
}

func TestListFeedCardsResolvesRelativeLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/cards", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://pf.kakao.com/_sIJCxj/posts" {
			t.Errorf("неожиданный url карточек: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"link":"/_sIJCxj/112111714","dateLabel":"방금","pinned":false},
			{"link":"https://pf.kakao.com/_sIJCxj/112111000","dateLabel":"3일 전","pinned":true}
		]`))
	})
	client := newTestClient(t, mux)

	cards, err := client.ListFeedCards(context.Background())
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("ожидали 2 карточки, получили %d", len(cards))
	}
	if cards[0].Link != "https://pf.kakao.com/_sIJCxj/112111714" {
		t.Fatalf("относительная ссылка не приведена к абсолютной: %q", cards[0].Link)
	}
	if !cards[1].Pinned || cards[1].DateLabel != "3일 전" {
		t.Fatalf("потеряны атрибуты карточки: %+v", cards[1])
	}
}

func TestExtractPostFillsURLFromLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/post", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"메뉴","text":"본문","imageUrls":["https://img/1.jpg"]}`))
	})
	client := newTestClient(t, mux)

	post, err := client.ExtractPost(context.Background(), "https://pf.kakao.com/_sIJCxj/112111714")
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if post.URL != "https://pf.kakao.com/_sIJCxj/112111714" {
		t.Fatalf("URL должен наследоваться от ссылки: %q", post.URL)
	}
	if post.Title != "메뉴" || len(post.ImageURLs) != 1 {
		t.Fatalf("неожиданный пост: %+v", post)
	}
}

func TestExtractPostErrorStatusIsFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/post", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "layout changed", http.StatusBadGateway)
	})
	client := newTestClient(t, mux)

	if _, err := client.ExtractPost(context.Background(), "https://pf.kakao.com/p/1"); err == nil {
		t.Fatalf("ожидали ошибку при статусе 502")
	}
}
