package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/report", handler.GetReport)
	mux.HandleFunc("GET /v1/players/{faceitID}", handler.GetProfile)
	mux.HandleFunc("GET /v1/profiles", handler.ListProfiles)
}
