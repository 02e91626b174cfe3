package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rinkside/fantasy-hockey/internal/domain/schedule"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

// ScheduleProvider is the daily game slate source.
type ScheduleProvider interface {
	Scores(ctx context.Context, date string) (schedule.GameDay, error)
}

// ScheduleService serves the date-keyed game slate with display-timezone
// localized start times. A provider failure degrades to an empty slate.
type ScheduleService struct {
	provider ScheduleProvider
	cache    *cache.Store
	location *time.Location
	logger   *slog.Logger
}

func NewScheduleService(provider ScheduleProvider, store *cache.Store, location *time.Location, logger *slog.Logger) *ScheduleService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleService{
		provider: provider,
		cache:    store,
		location: location,
		logger:   logger,
	}
}

// Day returns the slate for one YYYY-MM-DD date.
func (s *ScheduleService) Day(ctx context.Context, date string) (schedule.GameDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Day")
	defer span.End()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return schedule.GameDay{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	out, err := s.cache.GetOrLoad(ctx, date, func(ctx context.Context) (any, error) {
		day, fetchErr := s.provider.Scores(ctx, date)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "schedule unavailable, degrading to empty slate",
				slog.String("date", date),
				slog.Any("error", fetchErr),
			)
			return schedule.GameDay{Date: date, Games: []schedule.Game{}}, nil
		}
		return day, nil
	})
	if err != nil {
		return schedule.GameDay{}, fmt.Errorf("load schedule: %w", err)
	}
	day, ok := out.(schedule.GameDay)
	if !ok {
		return schedule.GameDay{}, fmt.Errorf("unexpected cached schedule type %T", out)
	}
	return day.Localize(s.location), nil
}
