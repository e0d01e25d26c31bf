// Package http provides the HTTP API for ingestd.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/ingestd/internal/config"
	"github.com/fyrsmithlabs/ingestd/internal/ingest"
)

// Ingestor runs the ingestion pipeline for one request.
type Ingestor interface {
	Ingest(ctx context.Context, req *ingest.Request) (*ingest.Result, error)
}

// Server provides HTTP endpoints for ingestd.
type Server struct {
	echo     *echo.Echo
	ingestor Ingestor
	logger   *zap.Logger
	config   config.ServerConfig
}

// NewServer creates the HTTP server.
func NewServer(ingestor Ingestor, registry *prometheus.Registry, logger *zap.Logger, cfg config.ServerConfig) (*Server, error) {
	if ingestor == nil {
		return nil, fmt.Errorf("ingestor cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}
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
		ingestor: ingestor,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes(registry)

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes(registry *prometheus.Registry) {
	s.echo.GET("/health", s.handleHealth)
	if registry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	v1 := s.echo.Group("/api/v1")
	v1.POST("/ingest", s.handleIngest)
}

// IngestRequest is the request body for POST /api/v1/ingest.
//
// Transform option booleans are pointers: an absent field leaves the tool's
// default untouched.
type IngestRequest struct {
	RepositoryReference string           `json:"repositoryReference"`
	OutputMode          string           `json:"outputMode,omitempty"`
	Selection           string           `json:"selection,omitempty"`
	TransformOptions    TransformOptions `json:"transformOptions"`
}

// TransformOptions mirrors ingest.TransformOptions on the wire.
type TransformOptions struct {
	Compress         *bool `json:"compress,omitempty"`
	RemoveComments   *bool `json:"removeComments,omitempty"`
	RemoveEmptyLines *bool `json:"removeEmptyLines,omitempty"`
}

// IngestResponse is the response body for POST /api/v1/ingest.
type IngestResponse struct {
	OutputPath string `json:"outputPath"`
	Content    string `json:"content"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleIngest runs the ingestion pipeline for the supplied repository.
func (s *Server) handleIngest(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid ingest request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.RepositoryReference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "repositoryReference field is required")
	}

	mode := ingest.ModeFullText
	switch req.OutputMode {
	case "", string(ingest.ModeFullText):
	case string(ingest.ModeSelectedFiles):
		mode = ingest.ModeSelectedFiles
		if req.Selection == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "selection field is required for selected-files mode")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown outputMode %q", req.OutputMode))
	}

	result, err := s.ingestor.Ingest(c.Request().Context(), &ingest.Request{
		Reference: req.RepositoryReference,
		Mode:      mode,
		Selection: req.Selection,
		Transform: ingest.TransformOptions{
			Compress:         req.TransformOptions.Compress,
			RemoveComments:   req.TransformOptions.RemoveComments,
			RemoveEmptyLines: req.TransformOptions.RemoveEmptyLines,
		},
	})
	if err != nil {
		return s.classifyError(c, req.RepositoryReference, err)
	}

	return c.JSON(http.StatusOK, IngestResponse{
		OutputPath: result.OutputPath,
		Content:    result.Content,
	})
}

// classifyError maps the pipeline error taxonomy onto HTTP statuses.
// Invalid references are caller-correctable; everything else surfaces as an
// opaque internal error with the detail kept server-side.
func (s *Server) classifyError(c echo.Context, ref string, err error) error {
	if errors.Is(err, ingest.ErrInvalidReference) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.logger.Error("ingestion failed",
		zap.String("reference", ref),
		zap.Error(err),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "ingestion failed")
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
