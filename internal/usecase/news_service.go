package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rinkside/fantasy-hockey/internal/domain/news"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

// NewsProvider is the league headlines source.
type NewsProvider interface {
	Headlines(ctx context.Context) ([]news.Article, error)
}

// NewsService serves league headlines; a provider failure degrades to an
// empty list.
type NewsService struct {
	provider NewsProvider
	cache    *cache.Store
	logger   *slog.Logger
}

func NewNewsService(provider NewsProvider, store *cache.Store, logger *slog.Logger) *NewsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NewsService{
		provider: provider,
		cache:    store,
		logger:   logger,
	}
}

func (s *NewsService) Headlines(ctx context.Context) ([]news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.Headlines")
	defer span.End()

	out, err := s.cache.GetOrLoad(ctx, "headlines", func(ctx context.Context) (any, error) {
		articles, fetchErr := s.provider.Headlines(ctx)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "news feed unavailable, degrading to empty list",
				slog.Any("error", fetchErr),
			)
			return []news.Article{}, nil
		}
		return articles, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load headlines: %w", err)
	}
	articles, ok := out.([]news.Article)
	if !ok {
		return nil, fmt.Errorf("unexpected cached news type %T", out)
	}
	return articles, nil
}
