package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rinkside/fantasy-hockey/external/espn"
	"github.com/rinkside/fantasy-hockey/external/newswire"
	"github.com/rinkside/fantasy-hockey/external/nhl"
	"github.com/rinkside/fantasy-hockey/internal/config"
	"github.com/rinkside/fantasy-hockey/internal/interfaces/httpapi"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
	"github.com/rinkside/fantasy-hockey/internal/platform/logging"
	"github.com/rinkside/fantasy-hockey/internal/platform/resilience"
	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

func NewHTTPServer(cfg config.Config, clientLogger *logging.Logger, logger *slog.Logger) (*http.Server, error) {
	nhlClient := nhl.NewClient(nhl.ClientConfig{
		StatsBaseURL: cfg.NHLStatsBaseURL,
		WebBaseURL:   cfg.NHLWebBaseURL,
		Season:       cfg.NHLSeason,
		GameType:     cfg.NHLGameType,
		Timeout:      cfg.NHLTimeout,
		MaxRetries:   cfg.NHLMaxRetries,
		Logger:       clientLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
	})

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL: cfg.ESPNFantasyBaseURL,
		Season:  cfg.ESPNFantasySeason,
		Timeout: cfg.ESPNFantasyTimeout,
		Logger:  clientLogger,
	})

	newsClient := newswire.NewClient(newswire.ClientConfig{
		BaseURL: cfg.NewsBaseURL,
		Timeout: cfg.NewsTimeout,
		Logger:  clientLogger,
	})

	location, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", cfg.DisplayTimezone, err)
	}

	tableSvc := usecase.NewPlayerTableService(
		nhlClient,
		cache.NewStore(cfg.TableCacheTTL),
		cache.NewStore(cfg.GameLogCacheTTL),
		logger,
	)
	tradeSvc := usecase.NewTradeService(tableSvc)
	rosterSvc := usecase.NewRosterService(
		espnClient,
		tableSvc,
		cache.NewStore(cfg.LeagueCacheTTL),
		cfg.NameMatchThreshold,
	)
	scheduleSvc := usecase.NewScheduleService(nhlClient, cache.NewStore(cfg.ScheduleCacheTTL), location, logger)
	standingsSvc := usecase.NewStandingsService(nhlClient, cache.NewStore(cfg.StandingsCacheTTL), logger)
	newsSvc := usecase.NewNewsService(newsClient, cache.NewStore(cfg.NewsCacheTTL), logger)

	handler := httpapi.NewHandler(tableSvc, tradeSvc, rosterSvc, scheduleSvc, standingsSvc, newsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
