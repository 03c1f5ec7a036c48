package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontlab/cart-widget-backend/internal/api/handlers"
	"github.com/storefrontlab/cart-widget-backend/internal/api/middleware"
	"github.com/storefrontlab/cart-widget-backend/internal/cart"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
	"github.com/storefrontlab/cart-widget-backend/internal/recommend"
	"github.com/storefrontlab/cart-widget-backend/internal/session"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	TopLimit       int
	Copy           fragments.Copy
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		TopLimit:       3,
		Copy:           fragments.DefaultCopy(),
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the widget components behind the HTTP surface. The
// engine handle is injected; the server owns no cart state of its own.
func NewServer(cfg Config, engine commerce.Engine, rec *recommend.Client,
	issuer *session.TokenIssuer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
	}

	projector := cart.NewProjector(engine, logger)
	gateway := cart.NewGateway(logger)
	builder := fragments.NewBuilder(projector, cfg.Copy, logger)

	s.setupMiddleware()
	s.setupRoutes(engine, projector, gateway, builder, rec, issuer)

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", session.TokenHeader},
	}
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes. Everything under /api except
// the bootstrap requires a valid anti-forgery token; the check runs
// before any cart state is read or mutated.
func (s *Server) setupRoutes(engine commerce.Engine, projector *cart.Projector,
	gateway *cart.Gateway, builder *fragments.Builder, rec *recommend.Client,
	issuer *session.TokenIssuer) {

	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	widgetHandler := handlers.NewWidgetHandler(engine, projector, rec, issuer,
		s.config.Copy, s.config.TopLimit, s.logger)
	cartHandler := handlers.NewCartHandler(engine, projector, gateway, builder, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/widget/bootstrap", widgetHandler.Bootstrap)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(issuer))

			r.Get("/widget", widgetHandler.Widget)
			r.Get("/cart", cartHandler.Get)
			r.Post("/cart/quantity", cartHandler.UpdateQuantity)
			r.Post("/cart/remove", cartHandler.RemoveItem)
			r.Get("/cart/fragments", cartHandler.Fragments)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
