package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/budget-be/internal/analytics"
	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/config"
	"github.com/hongminglow/budget-be/internal/events"
	"github.com/hongminglow/budget-be/internal/goals"
	"github.com/hongminglow/budget-be/internal/http/handlers"
	"github.com/hongminglow/budget-be/internal/ledger"
	"github.com/hongminglow/budget-be/internal/middleware"
	"github.com/hongminglow/budget-be/internal/storage"
	"github.com/hongminglow/budget-be/internal/users"
)

// Deps are the long-lived collaborators the server is built from.
type Deps struct {
	Store     storage.RecordStore
	Publisher events.Publisher
	Logger    *slog.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up services, middleware, and routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)
	guard := handlers.Middleware(middleware.RequireAuth(tokens))

	entries := ledger.NewService(deps.Store, deps.Publisher)
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.Store).Register(mux)
	handlers.NewAuthHandler(auth.NewService(deps.Store, hasher, tokens), guard).Register(mux)
	handlers.NewEntryHandler(entries, guard).Register(mux)
	handlers.NewGoalHandler(goals.NewService(deps.Store, deps.Publisher), guard).Register(mux)
	handlers.NewAnalyticsHandler(analytics.NewEngine(entries, loc), guard).Register(mux)
	handlers.NewUserHandler(users.NewService(deps.Store, hasher), guard).Register(mux)

	handler := middleware.Chain(mux,
		middleware.Logging(deps.Logger),
		middleware.Recover,
		middleware.CORS(cfg.CORSOrigins),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(deps.Logger.Handler(), slog.LevelWarn),
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
