package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/logcentral/logcentral/internal/auth"
	"github.com/logcentral/logcentral/internal/config"
	"github.com/logcentral/logcentral/internal/ingest"
	"github.com/logcentral/logcentral/internal/store"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
	nrApp  *newrelic.Application
	log    zerolog.Logger
}

// New builds the Echo server and registers routes. The store decides where
// records live (postgres or in-memory); the server does not care which.
func New(cfg *config.Config, st store.Store, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var nrApp *newrelic.Application
	if cfg.Observability != nil && cfg.Observability.Enabled {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.LicenseKey),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("new relic init failed, continuing without it")
		} else {
			nrApp = app
		}
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	if nrApp != nil {
		e.Use(transactionMiddleware(nrApp))
	}

	registry := auth.NewRegistry(cfg.Auth.TokenMap())
	pipeline := ingest.NewPipeline(registry, st, logger)
	logs := &LogsHandler{Pipeline: pipeline, Store: st}

	e.GET("/", root)
	e.GET("/health", health)
	e.POST("/logs", logs.Create)
	e.GET("/logs", logs.List)

	return &Server{Echo: e, Config: cfg, nrApp: nrApp, log: logger}
}

// Start runs the HTTP server. Blocks until the context is cancelled or the
// server fails; on cancel, Shutdown drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.Echo.Server.ReadTimeout = time.Duration(s.Config.Server.ReadTimeout) * time.Second
	s.Echo.Server.WriteTimeout = time.Duration(s.Config.Server.WriteTimeout) * time.Second
	s.Echo.Server.IdleTimeout = time.Duration(s.Config.Server.IdleTimeout) * time.Second

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	addr := ":" + s.Config.Server.Port
	s.log.Info().Str("addr", addr).Msg("server listening")
	return s.Echo.Start(addr)
}

// Shutdown gracefully stops the server and flushes the observability agent.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.nrApp != nil {
		s.nrApp.Shutdown(5 * time.Second)
	}
	return s.Echo.Shutdown(ctx)
}

// requestLogger emits one zerolog line per request.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// transactionMiddleware opens a New Relic transaction per request so the
// pgx tracer can attach datastore segments to it.
func transactionMiddleware(app *newrelic.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := app.StartTransaction(c.Request().Method + " " + c.Path())
			defer txn.End()
			txn.SetWebRequestHTTP(c.Request())
			c.SetRequest(c.Request().WithContext(newrelic.NewContext(c.Request().Context(), txn)))
			return next(c)
		}
	}
}
