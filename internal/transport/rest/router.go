package rest

import (
	"chessduel/docs"
	"chessduel/internal/service"
	"chessduel/internal/transport/rest/handler"
	"chessduel/internal/transport/rest/middleware"
	"chessduel/internal/transport/ws"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	GameService *service.GameService
	AuthService *service.AuthService
	WSHub       *ws.Hub
	Logger      *slog.Logger

	RequireAuth    bool
	AllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()

	// Initialize handlers
	gameHandler := handler.NewGameHandler(c.GameService, logger)
	playerHandler := handler.NewPlayerHandler(c.GameService, logger)
	wsHandler := ws.NewHandler(c.WSHub, c.GameService, c.AuthService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.RequireAuth)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// WebSocket route (identity in query params)
	v1.HandleFunc("/ws/games/{gameId}", wsHandler.GameWS).Methods("GET")

	// API docs
	v1.HandleFunc("/docs/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Game routes (actor from bearer token or body playerId)
	gameRoutes := v1.PathPrefix("/games").Subrouter()
	gameRoutes.Use(authMW.IdentifyPlayer)

	gameRoutes.HandleFunc("/create", gameHandler.Create).Methods("POST", "OPTIONS")
	gameRoutes.HandleFunc("/join/{gameId}", gameHandler.Join).Methods("POST", "OPTIONS")
	gameRoutes.HandleFunc("/{gameId}", gameHandler.Get).Methods("GET", "OPTIONS")
	gameRoutes.HandleFunc("/{gameId}/move", gameHandler.Move).Methods("POST", "OPTIONS")
	gameRoutes.HandleFunc("/{gameId}/resign", gameHandler.Resign).Methods("POST", "OPTIONS")
	gameRoutes.HandleFunc("/{gameId}/offer-draw", gameHandler.OfferDraw).Methods("POST", "OPTIONS")
	gameRoutes.HandleFunc("/{gameId}/respond-draw", gameHandler.RespondDraw).Methods("POST", "OPTIONS")

	// Player routes
	v1.HandleFunc("/players/{playerId}/stats", playerHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
