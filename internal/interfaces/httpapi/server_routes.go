package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerScopedRoutes(mux *http.ServeMux, handler *Handler) {
	registerSeasonRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerLineupRoutes(mux, handler)
	registerStatsRoutes(mux, handler)
	registerGrowthRoutes(mux, handler)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/seasons", RequireScope(http.HandlerFunc(handler.CreateSeason)))
	mux.Handle("GET /v1/seasons", RequireScope(http.HandlerFunc(handler.ListSeasons)))
	mux.Handle("GET /v1/seasons/{seasonID}", RequireScope(http.HandlerFunc(handler.GetSeason)))
	mux.Handle("PUT /v1/seasons/{seasonID}", RequireScope(http.HandlerFunc(handler.UpdateSeason)))
	mux.Handle("PUT /v1/seasons/{seasonID}/active", RequireScope(http.HandlerFunc(handler.ActivateSeason)))
	mux.Handle("DELETE /v1/seasons/{seasonID}", RequireScope(http.HandlerFunc(handler.DeleteSeason)))
	mux.Handle("POST /v1/seasons/{seasonID}/validate-date", RequireScope(http.HandlerFunc(handler.ValidateMatchDate)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/matches", RequireScope(http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/seasons/{seasonID}/matches", RequireScope(http.HandlerFunc(handler.ListMatchesBySeason)))
	mux.Handle("GET /v1/matches/{matchID}", RequireScope(http.HandlerFunc(handler.GetMatch)))
	mux.Handle("PUT /v1/matches/{matchID}", RequireScope(http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireScope(http.HandlerFunc(handler.DeleteMatch)))
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/formations", RequireScope(http.HandlerFunc(handler.ListFormations)))
	mux.Handle("PUT /v1/matches/{matchID}/lineup/formation", RequireScope(http.HandlerFunc(handler.SelectFormation)))
	mux.Handle("GET /v1/matches/{matchID}/lineup", RequireScope(http.HandlerFunc(handler.GetLineupByMatch)))
	mux.Handle("PUT /v1/lineups/{lineupID}/slots/{slotCode}", RequireScope(http.HandlerFunc(handler.AssignLineupSlot)))
	mux.Handle("DELETE /v1/lineups/{lineupID}/slots/{slotCode}", RequireScope(http.HandlerFunc(handler.UnassignLineupSlot)))
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("PUT /v1/matches/{matchID}/stats/{playerID}", RequireScope(http.HandlerFunc(handler.SubmitPlayerStats)))
	mux.Handle("POST /v1/matches/{matchID}/stats", RequireScope(http.HandlerFunc(handler.SubmitBatchStats)))
	mux.Handle("GET /v1/matches/{matchID}/stats", RequireScope(http.HandlerFunc(handler.ListMatchStats)))
	mux.Handle("POST /v1/matches/{matchID}/stats/{playerID}/suggestions", RequireScope(http.HandlerFunc(handler.GenerateSuggestions)))
	mux.Handle("PUT /v1/matches/{matchID}/players/{playerID}/reflection", RequireScope(http.HandlerFunc(handler.SaveReflection)))
	mux.Handle("GET /v1/matches/{matchID}/players/{playerID}/review", RequireScope(http.HandlerFunc(handler.GetMatchReview)))
}

func registerGrowthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/players/{playerID}/growth", RequireScope(http.HandlerFunc(handler.GetPlayerGrowth)))
	mux.Handle("GET /v1/players/{playerID}/growth/chart", RequireScope(http.HandlerFunc(handler.GetPlayerGrowthChart)))
	mux.Handle("GET /v1/teams/me/growth", RequireScope(http.HandlerFunc(handler.GetTeamGrowthBoard)))
}
