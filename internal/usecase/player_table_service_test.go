package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

type fakeStatsProvider struct {
	summary    []map[string]any
	realtime   []map[string]any
	possession []map[string]any
	goalies    []map[string]any

	summaryErr    error
	realtimeErr   error
	possessionErr error
	goaliesErr    error

	gameLog    []stats.GameLogEntry
	gameLogErr error

	summaryCalls int

	// When set, SkaterSummary signals entry on summaryStarted and parks on
	// summaryRelease, letting tests interleave work mid-build.
	summaryStarted chan struct{}
	summaryRelease chan struct{}
}

func (f *fakeStatsProvider) SkaterSummary(context.Context) ([]map[string]any, error) {
	f.summaryCalls++
	if f.summaryStarted != nil {
		f.summaryStarted <- struct{}{}
	}
	if f.summaryRelease != nil {
		<-f.summaryRelease
	}
	return f.summary, f.summaryErr
}

func (f *fakeStatsProvider) SkaterRealtime(context.Context) ([]map[string]any, error) {
	return f.realtime, f.realtimeErr
}

func (f *fakeStatsProvider) SkaterPossession(context.Context) ([]map[string]any, error) {
	return f.possession, f.possessionErr
}

func (f *fakeStatsProvider) GoalieSummary(context.Context) ([]map[string]any, error) {
	return f.goalies, f.goaliesErr
}

func (f *fakeStatsProvider) GameLog(context.Context, int64, string) ([]stats.GameLogEntry, error) {
	return f.gameLog, f.gameLogErr
}

func newTableService(provider *fakeStatsProvider) *PlayerTableService {
	return NewPlayerTableService(provider, cache.NewStore(time.Minute), cache.NewStore(time.Minute), nil)
}

func seedProvider() *fakeStatsProvider {
	return &fakeStatsProvider{
		summary: []map[string]any{
			{
				"playerId":       float64(8478402),
				"skaterFullName": "Connor McDavid",
				"teamAbbrevs":    "EDM",
				"positionCode":   "C",
				"gamesPlayed":    float64(41),
				"goals":          float64(30),
				"assists":        float64(50),
				"points":         float64(80),
			},
			{
				"playerId":       float64(8477934),
				"skaterFullName": "Leon Draisaitl",
				"teamAbbrevs":    "EDM",
				"positionCode":   "C",
				"gamesPlayed":    float64(40),
				"goals":          float64(28),
				"assists":        float64(40),
				"points":         float64(68),
			},
		},
		realtime: []map[string]any{
			{
				"playerId":       float64(8478402),
				"skaterFullName": "Connor McDavid",
				"hits":           float64(30),
				"blockedShots":   float64(20),
			},
		},
		goalies: []map[string]any{
			{
				"playerId":       float64(8479973),
				"goalieFullName": "Stuart Skinner",
				"teamAbbrevs":    "EDM",
				"gamesPlayed":    float64(30),
				"wins":           float64(18),
				"saves":          float64(800),
				"shotsAgainst":   float64(880),
			},
		},
	}
}

func TestPlayerTableService_TableMergesAllSources(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())
	rows, err := svc.Table(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Skaters first, goalies after.
	require.Equal(t, stats.PositionSkater, rows[0].PositionType)
	require.Equal(t, stats.PositionGoalie, rows[2].PositionType)

	mcdavid := rows[0]
	require.Equal(t, "Connor McDavid", mcdavid.Name)
	require.Equal(t, float64(30), mcdavid.Stats["hits"])
	require.NotNil(t, rows[2].GSAA)
}

func TestPlayerTableService_SupplementFailureDegradesToEmpty(t *testing.T) {
	t.Parallel()

	provider := seedProvider()
	provider.realtimeErr = errors.New("realtime down")
	provider.possessionErr = errors.New("possession down")

	svc := newTableService(provider)
	rows, err := svc.Table(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Supplement columns exist and are zero-filled.
	require.Equal(t, float64(0), rows[0].Stats["hits"])
	require.Equal(t, float64(0), rows[0].Stats["satPct"])
}

func TestPlayerTableService_AllSourcesDownYieldsEmptyTable(t *testing.T) {
	t.Parallel()

	provider := &fakeStatsProvider{
		summaryErr:    errors.New("down"),
		realtimeErr:   errors.New("down"),
		possessionErr: errors.New("down"),
		goaliesErr:    errors.New("down"),
	}

	svc := newTableService(provider)
	rows, err := svc.Table(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestPlayerTableService_SnapshotIsCached(t *testing.T) {
	t.Parallel()

	provider := seedProvider()
	svc := newTableService(provider)

	_, err := svc.Table(context.Background())
	require.NoError(t, err)
	_, err = svc.Table(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, provider.summaryCalls)
}

func TestPlayerTableService_SetWeightsRecomputesTable(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())

	before, err := svc.Table(context.Background())
	require.NoError(t, err)

	weights := scoring.DefaultWeights()
	weights["goals"] = 10
	require.NoError(t, svc.SetWeights(context.Background(), weights))

	after, err := svc.Table(context.Background())
	require.NoError(t, err)
	require.Greater(t, after[0].FantasyPoints, before[0].FantasyPoints)
}

func TestPlayerTableService_SetWeightsDuringBuildIsNotLost(t *testing.T) {
	t.Parallel()

	provider := seedProvider()
	provider.summaryStarted = make(chan struct{}, 1)
	provider.summaryRelease = make(chan struct{})
	svc := newTableService(provider)

	buildErr := make(chan error, 1)
	go func() {
		_, err := svc.Table(context.Background())
		buildErr <- err
	}()
	<-provider.summaryStarted

	// The weight change lands while the first build is parked inside the
	// provider fetch.
	weights := scoring.DefaultWeights()
	weights["goals"] = 10
	require.NoError(t, svc.SetWeights(context.Background(), weights))

	close(provider.summaryRelease)
	require.NoError(t, <-buildErr)

	rows, err := svc.Table(context.Background())
	require.NoError(t, err)
	// McDavid under the new weights: 30 goals x 10 + 50 assists x 2 +
	// 30 hits x 0.2 + 20 blocks x 0.3.
	require.Equal(t, float64(412), rows[0].FantasyPoints)
}

func TestPlayerTableService_SetWeightsRejectsUnknownStat(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())
	err := svc.SetWeights(context.Background(), scoring.Weights{"corsiAura": 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerTableService_LeadersFilterAndSort(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())
	rows, err := svc.Leaders(context.Background(), LeaderFilter{
		Position: "C",
		SortBy:   "goals",
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Connor McDavid", rows[0].Name)
}

func TestPlayerTableService_GoalieLeaderboardOnlyGoalies(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())
	rows, err := svc.GoalieLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, stats.PositionGoalie, rows[0].PositionType)
}

func TestPlayerTableService_GameLogValidation(t *testing.T) {
	t.Parallel()

	svc := newTableService(seedProvider())
	_, err := svc.GameLog(context.Background(), 0, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerTableService_GameLogPassesThrough(t *testing.T) {
	t.Parallel()

	provider := seedProvider()
	provider.gameLog = []stats.GameLogEntry{{GameID: 1, Goals: 2}}

	svc := newTableService(provider)
	entries, err := svc.GameLog(context.Background(), 8478402, "20252026")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 2, entries[0].Goals)
}
