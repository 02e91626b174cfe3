package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

type Handler struct {
	tableService     *usecase.PlayerTableService
	tradeService     *usecase.TradeService
	rosterService    *usecase.RosterService
	scheduleService  *usecase.ScheduleService
	standingsService *usecase.StandingsService
	newsService      *usecase.NewsService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	tableService *usecase.PlayerTableService,
	tradeService *usecase.TradeService,
	rosterService *usecase.RosterService,
	scheduleService *usecase.ScheduleService,
	standingsService *usecase.StandingsService,
	newsService *usecase.NewsService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tableService:     tableService,
		tradeService:     tradeService,
		rosterService:    rosterService,
		scheduleService:  scheduleService,
		standingsService: standingsService,
		newsService:      newsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	filter := usecase.LeaderFilter{
		Team:     query.Get("team"),
		Position: query.Get("pos"),
		SortBy:   query.Get("sort"),
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	rows, err := h.tableService.Leaders(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetPlayerGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerGameLog")
	defer span.End()

	playerID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("playerID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id must be numeric", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.tableService.GameLog(ctx, playerID, r.URL.Query().Get("season"))
	if err != nil {
		h.logger.WarnContext(ctx, "get game log failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) ListGoalieGSAA(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGoalieGSAA")
	defer span.End()

	rows, err := h.tableService.GoalieLeaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "goalie leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetScoringWeights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringWeights")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.tableService.Weights())
}

func (h *Handler) PutScoringWeights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutScoringWeights")
	defer span.End()

	var req scoringWeightsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tableService.SetWeights(ctx, scoring.Weights(req.Weights)); err != nil {
		h.logger.WarnContext(ctx, "set scoring weights failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.tableService.Weights())
}

func (h *Handler) CompareTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareTrade")
	defer span.End()

	var req tradeCompareRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.tradeService.Compare(ctx, req.Sending, req.Receiving)
	if err != nil {
		h.logger.WarnContext(ctx, "trade comparison failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeagueRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueRosters")
	defer span.End()

	leagueID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("leagueID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: league id must be numeric", usecase.ErrInvalidInput))
		return
	}

	rosters, err := h.rosterService.LeagueRosters(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league rosters failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosters)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	day, err := h.scheduleService.Day(ctx, strings.TrimSpace(r.PathValue("date")))
	if err != nil {
		h.logger.WarnContext(ctx, "get schedule failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, day)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.standingsService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	articles, err := h.newsService.Headlines(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, articles)
}

func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRoster")
	defer span.End()

	resolved, err := h.rosterService.ImportCSV(ctx, http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		h.logger.WarnContext(ctx, "import roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolved)
}

func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportRoster")
	defer span.End()

	out, err := h.rosterService.ExportCSV(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type scoringWeightsRequest struct {
	Weights map[string]float64 `json:"weights" validate:"required,min=1"`
}

type tradeCompareRequest struct {
	Sending   []string `json:"sending" validate:"max=10,dive,required"`
	Receiving []string `json:"receiving" validate:"max=10,dive,required"`
}
