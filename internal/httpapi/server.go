// Package httpapi exposes the folder over a JSON HTTP API.
package httpapi

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

	"github.com/katalvlaran/lvfold/internal/logging"
	"github.com/katalvlaran/lvfold/internal/service"
	"github.com/katalvlaran/lvfold/pairing"
)

// maxBodySize bounds request bodies.
const maxBodySize = "1M"

// Server provides HTTP endpoints for lvfold.
type Server struct {
	echo   *echo.Echo
	folder *service.Folder
	logger *zap.Logger
	addr   string
}

// NewServer creates a new HTTP server. gatherer backs GET /metrics and may
// be nil to disable it.
func NewServer(folder *service.Folder, gatherer prometheus.Gatherer, logger *zap.Logger, addr string) (*Server, error) {
	if folder == nil {
		return nil, fmt.Errorf("folder cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			ctx := logging.WithRequestID(req.Context(), rid)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logging.FromContext(ctx, logger).Info("http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)

			return nil
		}
	})

	s := &Server{
		echo:   e,
		folder: folder,
		logger: logger,
		addr:   addr,
	}
	s.registerRoutes(gatherer)

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	s.echo.GET("/health", s.handleHealth)
	if gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := s.echo.Group("/api/v1")
	v1.POST("/fold", s.handleFold)
	v1.POST("/count", s.handleCount)
	v1.POST("/consensus", s.handleConsensus)
	v1.POST("/design", s.handleDesign)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

// handleHealth reports liveness and the available models.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Models: pairing.Names()})
}

func (s *Server) handleFold(c echo.Context) error {
	var req FoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := s.folder.Fold(c.Request().Context(), req.Sequence, req.Model)
	if err != nil {
		return s.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, newFoldResponse(res))
}

func (s *Server) handleCount(c echo.Context) error {
	var req FoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	total, err := s.folder.Count(c.Request().Context(), req.Sequence, req.Model)
	if err != nil {
		return s.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, CountResponse{Sequence: pairing.Normalize(req.Sequence), Count: total.String()})
}

func (s *Server) handleConsensus(c echo.Context) error {
	var req ConsensusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Structures) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "structures field is required")
	}

	res, err := s.folder.Consensus(c.Request().Context(), req.Structures)
	if err != nil {
		return s.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleDesign(c echo.Context) error {
	var req DesignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Target == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target field is required")
	}

	res, err := s.folder.Design(c.Request().Context(), req.Target, req.Sequence, req.Model)
	if err != nil {
		return s.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, DesignResponse{DesignResult: res, Count: res.Count.String()})
}

// toHTTPError maps service errors to status codes.
func (s *Server) toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "operation timed out")
	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
	default:
		logging.FromContext(c.Request().Context(), s.logger).Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// Start starts the HTTP server; it blocks until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
