package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/gamelog", handler.GetPlayerGameLog)
	mux.HandleFunc("GET /v1/goalies/gsaa", handler.ListGoalieGSAA)
	mux.HandleFunc("GET /v1/scoring/weights", handler.GetScoringWeights)
	mux.HandleFunc("PUT /v1/scoring/weights", handler.PutScoringWeights)
	mux.HandleFunc("POST /v1/trade/compare", handler.CompareTrade)
	mux.HandleFunc("GET /v1/fantasy/leagues/{leagueID}/rosters", handler.GetLeagueRosters)
	mux.HandleFunc("GET /v1/schedule/{date}", handler.GetSchedule)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/news", handler.GetNews)
	mux.HandleFunc("POST /v1/rosters/import", handler.ImportRoster)
	mux.HandleFunc("GET /v1/rosters/export", handler.ExportRoster)
}
