package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

const (
	tableCacheKey   = "player-table"
	recordsCacheKey = "player-records"
)

// StatsProvider is the slice of the league stats API the table pipeline
// consumes.
type StatsProvider interface {
	SkaterSummary(ctx context.Context) ([]map[string]any, error)
	SkaterRealtime(ctx context.Context) ([]map[string]any, error)
	SkaterPossession(ctx context.Context) ([]map[string]any, error)
	GoalieSummary(ctx context.Context) ([]map[string]any, error)
	GameLog(ctx context.Context, playerID int64, season string) ([]stats.GameLogEntry, error)
}

// LeaderFilter narrows and orders the flattened table. Zero value means the
// whole table sorted by fantasy points.
type LeaderFilter struct {
	Team     string
	Position string
	SortBy   string
	Limit    int
}

// PlayerTableService owns the stats refresh pipeline: fetch the four source
// reports, normalize, merge, derive, cache. Every upstream failure degrades
// to an empty report for that source; the table is built from whatever
// survived.
type PlayerTableService struct {
	provider     StatsProvider
	tableCache   *cache.Store
	gameLogCache *cache.Store
	logger       *slog.Logger

	mu         sync.RWMutex
	weights    scoring.Weights
	generation uint64
}

func NewPlayerTableService(
	provider StatsProvider,
	tableCache *cache.Store,
	gameLogCache *cache.Store,
	logger *slog.Logger,
) *PlayerTableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerTableService{
		provider:     provider,
		tableCache:   tableCache,
		gameLogCache: gameLogCache,
		logger:       logger,
		weights:      scoring.DefaultWeights(),
	}
}

// Weights returns a copy of the active scoring weights.
func (s *PlayerTableService) Weights() scoring.Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights.Clone()
}

// weightsSnapshot pairs the weights with the generation they belong to. The
// generation keys the table cache, so a build racing a SetWeights stores its
// result under the superseded key and never shadows the next read.
func (s *PlayerTableService) weightsSnapshot() (scoring.Weights, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights.Clone(), s.generation
}

// SetWeights validates and swaps the scoring weights, then drops every table
// built under the old weights. The merged records survive; only the derived
// columns depend on weights.
func (s *PlayerTableService) SetWeights(ctx context.Context, weights scoring.Weights) error {
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	s.weights = weights.Clone()
	s.generation++
	s.mu.Unlock()

	s.tableCache.DeletePrefix(ctx, tableCacheKey)
	return nil
}

// Snapshot returns the merged canonical records: one row per (player,
// population), skaters first. Each source report that fails is replaced by an
// empty report; an empty upstream yields an empty table, never an error.
func (s *PlayerTableService) Snapshot(ctx context.Context) ([]stats.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerTableService.Snapshot")
	defer span.End()

	out, err := s.tableCache.GetOrLoad(ctx, recordsCacheKey, func(ctx context.Context) (any, error) {
		return s.buildRecords(ctx), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load player records: %w", err)
	}
	records, ok := out.([]stats.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected cached records type %T", out)
	}
	return records, nil
}

func (s *PlayerTableService) buildRecords(ctx context.Context) []stats.Record {
	summary := s.fetchReport(ctx, "skater-summary", s.provider.SkaterSummary)
	realtime := s.fetchReport(ctx, "skater-realtime", s.provider.SkaterRealtime)
	possession := s.fetchReport(ctx, "skater-possession", s.provider.SkaterPossession)
	goalies := s.fetchReport(ctx, "goalie-summary", s.provider.GoalieSummary)

	skaterRecords := stats.Normalize(summary, stats.SkaterSummarySchema(), stats.PositionSkater)
	realtimeRecords := stats.Normalize(realtime, stats.SkaterRealtimeSchema(), stats.PositionSkater)
	possessionRecords := stats.Normalize(possession, stats.SkaterPossessionSchema(), stats.PositionSkater)
	goalieRecords := stats.Normalize(goalies, stats.GoalieSummarySchema(), stats.PositionGoalie)

	skaterRecords = stats.MergeSupplementary(skaterRecords, realtimeRecords, stats.SkaterRealtimeSchema().StatKeys())
	skaterRecords = stats.MergeSupplementary(skaterRecords, possessionRecords, stats.SkaterPossessionSchema().StatKeys())

	return stats.Union(skaterRecords, goalieRecords)
}

func (s *PlayerTableService) fetchReport(ctx context.Context, name string, fetch func(context.Context) ([]map[string]any, error)) []map[string]any {
	rows, err := fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "source report unavailable, degrading to empty",
			slog.String("report", name),
			slog.Any("error", err),
		)
		return nil
	}
	return rows
}

// Table returns the finished flattened table with fantasy points, remaining
// games, rest-of-season projections, and goalie GSAA attached.
func (s *PlayerTableService) Table(ctx context.Context) ([]stats.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerTableService.Table")
	defer span.End()

	weights, generation := s.weightsSnapshot()
	key := tableCacheKey + ":" + strconv.FormatUint(generation, 10)
	out, err := s.tableCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		records, loadErr := s.Snapshot(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		return stats.Flatten(records, weights), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load player table: %w", err)
	}
	rows, ok := out.([]stats.Row)
	if !ok {
		return nil, fmt.Errorf("unexpected cached table type %T", out)
	}
	return rows, nil
}

// Leaders applies team/position filtering and explicit sorting to the table.
func (s *PlayerTableService) Leaders(ctx context.Context, filter LeaderFilter) ([]stats.Row, error) {
	rows, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	team := strings.ToUpper(strings.TrimSpace(filter.Team))
	position := strings.ToUpper(strings.TrimSpace(filter.Position))

	filtered := make([]stats.Row, 0, len(rows))
	for _, row := range rows {
		if team != "" && row.Team != team {
			continue
		}
		if position != "" && row.Position != position {
			continue
		}
		filtered = append(filtered, row)
	}

	sortBy := strings.TrimSpace(filter.SortBy)
	if sortBy == "" {
		sortBy = "fantasyPoints"
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return rowSortValue(filtered[i], sortBy) > rowSortValue(filtered[j], sortBy)
	})

	if filter.Limit > 0 && filter.Limit < len(filtered) {
		filtered = filtered[:filter.Limit]
	}
	return filtered, nil
}

func rowSortValue(row stats.Row, key string) float64 {
	switch key {
	case "fantasyPoints":
		return row.FantasyPoints
	case "gamesRemaining":
		return row.GamesRemain
	}
	if value, ok := row.Stats[key]; ok {
		return value
	}
	if value, ok := row.RestOfSeason[key]; ok {
		return value
	}
	return 0
}

// GoalieLeaderboard returns goalie rows only, sorted by GSAA descending.
func (s *PlayerTableService) GoalieLeaderboard(ctx context.Context) ([]stats.Row, error) {
	rows, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	goalies := make([]stats.Row, 0, len(rows))
	for _, row := range rows {
		if row.PositionType != stats.PositionGoalie {
			continue
		}
		goalies = append(goalies, row)
	}
	sort.SliceStable(goalies, func(i, j int) bool {
		left, right := 0.0, 0.0
		if goalies[i].GSAA != nil {
			left = *goalies[i].GSAA
		}
		if goalies[j].GSAA != nil {
			right = *goalies[j].GSAA
		}
		return left > right
	})
	return goalies, nil
}

// GameLog returns one player's per-game lines, cached per (player, season).
func (s *PlayerTableService) GameLog(ctx context.Context, playerID int64, season string) ([]stats.GameLogEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerTableService.GameLog")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	key := strconv.FormatInt(playerID, 10) + ":" + strings.TrimSpace(season)
	out, err := s.gameLogCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.provider.GameLog(ctx, playerID, season)
	})
	if err != nil {
		return nil, fmt.Errorf("load game log: %w", err)
	}
	entries, ok := out.([]stats.GameLogEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached game log type %T", out)
	}
	return entries, nil
}
