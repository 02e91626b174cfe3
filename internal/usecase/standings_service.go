package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rinkside/fantasy-hockey/internal/domain/standings"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

// StandingsProvider is the league table source.
type StandingsProvider interface {
	Standings(ctx context.Context) ([]standings.TeamRecord, error)
}

// StandingsService serves the league table; a provider failure degrades to
// an empty table.
type StandingsService struct {
	provider StandingsProvider
	cache    *cache.Store
	logger   *slog.Logger
}

func NewStandingsService(provider StandingsProvider, store *cache.Store, logger *slog.Logger) *StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandingsService{
		provider: provider,
		cache:    store,
		logger:   logger,
	}
}

func (s *StandingsService) Table(ctx context.Context) ([]standings.TeamRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	out, err := s.cache.GetOrLoad(ctx, "standings", func(ctx context.Context) (any, error) {
		rows, fetchErr := s.provider.Standings(ctx)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "standings unavailable, degrading to empty table",
				slog.Any("error", fetchErr),
			)
			return []standings.TeamRecord{}, nil
		}
		// League order regardless of upstream ordering: points first, team
		// strength breaks ties.
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			return rows[i].Strength() > rows[j].Strength()
		})
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load standings: %w", err)
	}
	rows, ok := out.([]standings.TeamRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", out)
	}
	return rows, nil
}
