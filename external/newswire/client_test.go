package newswire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
	})
}

func TestHeadlines_MapsArticles(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"articles": [
				{
					"headline": "Trade deadline looms",
					"description": "Contenders shop for depth scoring.",
					"published": "2026-01-15T14:30:00Z",
					"links": {"web": {"href": "https://example.com/article"}},
					"images": [{"url": "https://example.com/img.jpg"}]
				},
				{"headline": "", "description": "no headline, dropped"}
			]
		}`))
	}))

	articles, err := client.Headlines(context.Background())
	if err != nil {
		t.Fatalf("Headlines error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got=%d", len(articles))
	}
	article := articles[0]
	if article.Headline != "Trade deadline looms" {
		t.Fatalf("unexpected headline %q", article.Headline)
	}
	if article.Link != "https://example.com/article" || article.ImageURL != "https://example.com/img.jpg" {
		t.Fatalf("unexpected links %+v", article)
	}
	if article.PublishedAt.IsZero() {
		t.Fatalf("expected published timestamp to parse")
	}
}

func TestHeadlines_FailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.Headlines(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency-unavailable sentinel, got: %v", err)
	}
}
