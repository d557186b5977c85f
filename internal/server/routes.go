package server

import (
	"log/slog"
	"net/http"

	"planetgen/internal/middleware"
	"planetgen/internal/planet"
	planetHandlers "planetgen/internal/planet/handlers"
	serverHandlers "planetgen/internal/server/handlers"
)

type Routes struct {
	planetService *planet.Service
	db            serverHandlers.Pinger
	redis         serverHandlers.Pinger
	jwtSecret     string
}

func NewRoutes(planetService *planet.Service, db, redis serverHandlers.Pinger, jwtSecret string) *Routes {
	return &Routes{
		planetService: planetService,
		db:            db,
		redis:         redis,
		jwtSecret:     jwtSecret,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	catalogHandler := planetHandlers.NewCatalogHandler(r.planetService)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/planets/{seed}", planetHandler.GetProfile)
	mux.HandleFunc("/api/planets/{seed}/texture", planetHandler.GetTexture)
	mux.HandleFunc("/api/planets/{seed}/texture.raw", planetHandler.GetRawTexture)
	mux.HandleFunc("/api/planets/batch", planetHandler.GenerateBatch)
	mux.HandleFunc("GET /api/catalog", catalogHandler.List)
	mux.HandleFunc("GET /api/catalog/{seed}", catalogHandler.Get)

	// Admin-only endpoints (bearer token with admin role)
	mux.Handle("POST /api/catalog", middleware.RequireAdmin(r.jwtSecret, http.HandlerFunc(catalogHandler.Register)))
	mux.Handle("DELETE /api/catalog/{seed}", middleware.RequireAdmin(r.jwtSecret, http.HandlerFunc(catalogHandler.Delete)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/planets/{seed}", "/api/planets/{seed}/texture", "/api/planets/{seed}/texture.raw", "/api/planets/batch", "/api/catalog"},
		"admin_endpoints", []string{"POST /api/catalog", "DELETE /api/catalog/{seed}"},
	)

	return mux
}
