// Package api provides the HTTP API server and handlers for the Platelist server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/ratelimit"
	"github.com/platelistapp/platelist-server/internal/sse"
	"github.com/platelistapp/platelist-server/internal/store"
	"github.com/platelistapp/platelist-server/internal/validation"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	sseManager  *sse.Manager
	rateLimiter *ratelimit.KeyedRateLimiter
	validator   *validation.Validator
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// limiter may be nil to disable rate limiting.
func NewServer(
	st store.Store,
	services *Services,
	sseManager *sse.Manager,
	limiter *ratelimit.KeyedRateLimiter,
	cfg *config.Config,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:       st,
		services:    services,
		sseManager:  sseManager,
		rateLimiter: limiter,
		validator:   validation.New(),
		router:      router,
		logger:      logger,
	}

	s.setupMiddleware(cfg.CORS.AllowedOrigins)

	humaConfig := huma.DefaultConfig(cfg.Server.Name+" API", APIVersion)
	humaConfig.Info.Description = "Ranked dining log and personalized restaurant recommendations"
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerRestaurantRoutes()
	s.registerRatingRoutes()
	s.registerRankingRoutes()
	s.registerTasteRoutes()
	s.registerRecommendationRoutes()

	// Raw handlers outside the JSON envelope.
	s.router.Handle("/metrics", promhttp.Handler())
	if s.sseManager != nil {
		events := sse.NewHandler(s.sseManager, func(r *http.Request) string {
			return chi.URLParam(r, "userId")
		}, s.logger)
		s.router.Get("/api/v1/users/{userId}/events", events.ServeHTTP)
	}
}
