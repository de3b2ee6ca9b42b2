// Package api serves the link health and submission endpoints over HTTP using huma on chi.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfpost/linkcheck/internal/ratelimit"
	"github.com/shelfpost/linkcheck/internal/service"
	"github.com/shelfpost/linkcheck/internal/store"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Services groups the business services used by the handlers.
type Services struct {
	Submissions *service.SubmissionService
	LinkHealth  *service.LinkHealthService
}

// Options configures cross-cutting HTTP behavior.
type Options struct {
	CORSOrigins []string
	// Limiter rate limits requests per client IP. Nil disables limiting.
	Limiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a server with middleware and all routes registered.
func NewServer(st *store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(opts.CORSOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))
	if opts.Limiter != nil {
		router.Use(RateLimitMiddleware(opts.Limiter, logger))
	}

	api := humachi.New(router, huma.DefaultConfig("LinkCheck API", Version))
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
	}

	s.registerHealthRoutes()
	s.registerLinkHealthRoutes()
	s.registerSubmissionRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, e.g. for OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
