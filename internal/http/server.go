// Package http provides the HTTP API for resolvd.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
	"github.com/fyrsmithlabs/resolvd/internal/resolver"
)

// Resolver is the resolution core the server exposes.
type Resolver interface {
	FindID(ctx context.Context, entity, input string, fields []string) (resolver.Resolution, error)
}

// Server provides HTTP endpoints for resolvd.
type Server struct {
	echo     *echo.Echo
	resolver Resolver
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(res Resolver, logger *zap.Logger, cfg *Config) (*Server, error) {
	if res == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 9191,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		resolver: res,
		logger:   logger,
		config:   cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	// Prometheus metrics
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	v1.POST("/resolve", s.handleResolve)
}

// ResolveRequest is the request body for POST /api/v1/resolve.
type ResolveRequest struct {
	Entity string   `json:"entity"`
	Input  string   `json:"input"`
	Fields []string `json:"fields"`
}

// ResolveResponse is the response body for POST /api/v1/resolve.
type ResolveResponse struct {
	RecordID   int64  `json:"record_id"`
	RawValue   string `json:"raw_value"`
	Window     string `json:"window"`
	Exact      bool   `json:"exact"`
	Candidates int    `json:"candidates"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleResolve resolves a free-text fragment to a record identifier.
func (s *Server) handleResolve(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid resolve request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Entity == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "entity field is required")
	}

	res, err := s.resolver.FindID(c.Request().Context(), req.Entity, req.Input, req.Fields)
	if err != nil {
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, ResolveResponse{
		RecordID:   res.ID,
		RawValue:   res.Raw,
		Window:     res.Window,
		Exact:      res.Exact,
		Candidates: res.Candidates,
	})
}

// resolveError maps resolution failures to HTTP status codes. Invalid input
// is the caller's fault, a missing record is a lookup miss, and a store
// failure means the upstream system is unreachable.
func resolveError(err error) *echo.HTTPError {
	var invalid *resolver.InvalidInputError
	if errors.As(err, &invalid) {
		return echo.NewHTTPError(http.StatusBadRequest, invalid.Error())
	}
	var noMatch *resolver.NoMatchError
	if errors.As(err, &noMatch) {
		return echo.NewHTTPError(http.StatusNotFound, noMatch.Error())
	}
	var storeErr *recordstore.StoreError
	if errors.As(err, &storeErr) {
		return echo.NewHTTPError(http.StatusBadGateway, "record store unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "resolution failed")
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
