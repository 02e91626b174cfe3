package newswire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/rinkside/fantasy-hockey/internal/domain/news"
	"github.com/rinkside/fantasy-hockey/internal/platform/logging"
	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

const defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/hockey/nhl"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client pulls league headlines from the public news feed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type newsEnvelope struct {
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Headline    string       `json:"headline"`
	Description string       `json:"description"`
	Published   string       `json:"published"`
	Links       articleLinks `json:"links"`
	Images      []newsImage  `json:"images"`
}

type articleLinks struct {
	Web articleHref `json:"web"`
}

type articleHref struct {
	Href string `json:"href"`
}

type newsImage struct {
	URL string `json:"url"`
}

// Headlines returns current league articles, newest first as the provider
// orders them. Articles without a headline are skipped.
func (c *Client) Headlines(ctx context.Context) ([]news.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/news", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "news request failed", "error", err)
		return nil, fmt.Errorf("%w: news feed unreachable", usecase.ErrDependencyUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read news body", usecase.ErrDependencyUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "news unexpected status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: news feed status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var envelope newsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode news payload: %w", err)
	}

	out := make([]news.Article, 0, len(envelope.Articles))
	for _, article := range envelope.Articles {
		headline := strings.TrimSpace(article.Headline)
		if headline == "" {
			continue
		}
		mapped := news.Article{
			Headline:    headline,
			Description: strings.TrimSpace(article.Description),
			Link:        article.Links.Web.Href,
		}
		if published, parseErr := time.Parse(time.RFC3339, article.Published); parseErr == nil {
			mapped.PublishedAt = published
		}
		if len(article.Images) > 0 {
			mapped.ImageURL = article.Images[0].URL
		}
		out = append(out, mapped)
	}
	return out, nil
}
