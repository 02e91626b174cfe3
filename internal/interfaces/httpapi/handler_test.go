package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/fantasy-hockey/internal/domain/news"
	"github.com/rinkside/fantasy-hockey/internal/domain/roster"
	"github.com/rinkside/fantasy-hockey/internal/domain/schedule"
	"github.com/rinkside/fantasy-hockey/internal/domain/standings"
	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

type stubStatsProvider struct{}

func (stubStatsProvider) SkaterSummary(context.Context) ([]map[string]any, error) {
	return []map[string]any{
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
			"assists":        float64(42),
			"points":         float64(70),
		},
	}, nil
}

func (stubStatsProvider) SkaterRealtime(context.Context) ([]map[string]any, error) {
	return nil, nil
}

func (stubStatsProvider) SkaterPossession(context.Context) ([]map[string]any, error) {
	return nil, nil
}

func (stubStatsProvider) GoalieSummary(context.Context) ([]map[string]any, error) {
	return []map[string]any{
		{
			"playerId":       float64(8479973),
			"goalieFullName": "Stuart Skinner",
			"teamAbbrevs":    "EDM",
			"positionCode":   "G",
			"gamesPlayed":    float64(30),
			"wins":           float64(20),
			"saves":          float64(800),
			"shotsAgainst":   float64(880),
			"goalsAgainst":   float64(80),
		},
	}, nil
}

func (stubStatsProvider) GameLog(_ context.Context, playerID int64, _ string) ([]stats.GameLogEntry, error) {
	return []stats.GameLogEntry{{GameID: 2025020500, GameDate: "2026-01-15", Opponent: "CGY", Goals: 2}}, nil
}

type stubLeagueProvider struct {
	err error
}

func (p stubLeagueProvider) FetchLeague(_ context.Context, leagueID int64) (usecase.ExternalFantasyLeague, error) {
	if p.err != nil {
		return usecase.ExternalFantasyLeague{}, p.err
	}
	return usecase.ExternalFantasyLeague{
		ID:   leagueID,
		Name: "Test League",
		Size: 1,
		Teams: []usecase.ExternalFantasyTeam{
			{
				ID:     1,
				Name:   "Puck Hogs",
				Abbrev: "PH",
				Entries: []roster.Entry{
					{PlayerName: "Mcdavid, Connor", FantasyTeam: "Puck Hogs"},
				},
			},
		},
	}, nil
}

type stubScheduleProvider struct{}

func (stubScheduleProvider) Scores(_ context.Context, date string) (schedule.GameDay, error) {
	return schedule.GameDay{
		Date: date,
		Games: []schedule.Game{
			{ID: 2025020500, HomeTeam: "EDM", AwayTeam: "CGY", State: "FUT", StartUTC: time.Date(2026, 1, 16, 2, 0, 0, 0, time.UTC)},
		},
	}, nil
}

type stubStandingsProvider struct{}

func (stubStandingsProvider) Standings(context.Context) ([]standings.TeamRecord, error) {
	return []standings.TeamRecord{
		{TeamAbbrev: "EDM", TeamName: "Edmonton Oilers", GamesPlayed: 41, Wins: 28, Points: 58, PointPct: 0.707},
	}, nil
}

type stubNewsProvider struct{}

func (stubNewsProvider) Headlines(context.Context) ([]news.Article, error) {
	return []news.Article{{Headline: "Trade deadline preview", Link: "https://example.com/a"}}, nil
}

type routerOptions struct {
	leagueErr      error
	swaggerEnabled bool
}

func newTestRouter(t *testing.T, opts routerOptions) http.Handler {
	t.Helper()

	tableSvc := usecase.NewPlayerTableService(stubStatsProvider{}, cache.NewStore(time.Minute), cache.NewStore(time.Minute), nil)
	tradeSvc := usecase.NewTradeService(tableSvc)
	rosterSvc := usecase.NewRosterService(stubLeagueProvider{err: opts.leagueErr}, tableSvc, cache.NewStore(time.Minute), 0.65)
	scheduleSvc := usecase.NewScheduleService(stubScheduleProvider{}, cache.NewStore(time.Minute), time.UTC, nil)
	standingsSvc := usecase.NewStandingsService(stubStandingsProvider{}, cache.NewStore(time.Minute), nil)
	newsSvc := usecase.NewNewsService(stubNewsProvider{}, cache.NewStore(time.Minute), nil)

	handler := NewHandler(tableSvc, tradeSvc, rosterSvc, scheduleSvc, standingsSvc, newsSvc, nil)
	return NewRouter(handler, nil, opts.swaggerEnabled, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "2.0", body["apiVersion"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ok", data["status"])
}

func TestListPlayers_SortedByFantasyPoints(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/players", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)

	first, ok := rows[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Connor McDavid", first["name"])
}

func TestListPlayers_LimitAndFilter(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/players?pos=G&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)

	row, ok := rows[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Stuart Skinner", row["name"])
}

func TestListPlayers_BadLimit(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/players?limit=notanumber", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlayerGameLog(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/players/8478402/gamelog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	entries, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
}

func TestGetPlayerGameLog_NonNumericID(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/players/mcdavid/gamelog", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGoalieGSAA(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/goalies/gsaa", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)

	row, ok := rows[0].(map[string]any)
	require.True(t, ok)
	require.NotNil(t, row["goalsSavedAboveAverage"])
}

func TestScoringWeights_RoundTrip(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/scoring/weights", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/v1/scoring/weights", `{"weights":{"goals":10,"assists":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	weights, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(10), weights["goals"])
}

func TestPutScoringWeights_UnknownStat(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodPut, "/v1/scoring/weights", `{"weights":{"quidditchGoals":7}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutScoringWeights_EmptyBody(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodPut, "/v1/scoring/weights", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareTrade(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodPost, "/v1/trade/compare",
		`{"sending":["Connor McDavid"],"receiving":["Leon Draisaitl"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, data, "net")
}

func TestCompareTrade_BothSidesEmpty(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodPost, "/v1/trade/compare", `{"sending":[],"receiving":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeagueRosters(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/fantasy/leagues/12345/rosters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	teams, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, teams, 1)

	team, ok := teams[0].(map[string]any)
	require.True(t, ok)
	players, ok := team["players"].([]any)
	require.True(t, ok)
	require.Len(t, players, 1)

	player, ok := players[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(8478402), player["playerId"])
}

func TestGetLeagueRosters_Private(t *testing.T) {
	router := newTestRouter(t, routerOptions{leagueErr: usecase.ErrPrivateLeague})

	rec := doRequest(t, router, http.MethodGet, "/v1/fantasy/leagues/12345/rosters", "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "PERMISSION_DENIED", errorObj["status"])
}

func TestGetSchedule(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/schedule/2026-01-15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "2026-01-15", data["date"])
}

func TestGetSchedule_BadDate(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/schedule/yesterday", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStandings(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestGetNews(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/news", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestRoster_ImportThenExport(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	csv := "playerName,fantasyTeam\nConnor McDavid,Puck Hogs\n"
	rec := doRequest(t, router, http.MethodPost, "/v1/rosters/import", csv)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/rosters/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "roster.csv")
	require.Equal(t, csv, rec.Body.String())
}

func TestRoster_ExportWithoutImport(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/v1/rosters/export", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenAPIRoute_GatedBySwaggerFlag(t *testing.T) {
	enabled := newTestRouter(t, routerOptions{swaggerEnabled: true})
	rec := doRequest(t, enabled, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	disabled := newTestRouter(t, routerOptions{})
	rec = doRequest(t, disabled, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
