// Package server assembles the echo HTTP server: API routes, metrics, and
// the embedded frontend.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/reportsmith/ai/metrics"
	"github.com/hrygo/reportsmith/ai/research"
	"github.com/hrygo/reportsmith/internal/profile"
	apiv1 "github.com/hrygo/reportsmith/server/router/api/v1"
	"github.com/hrygo/reportsmith/server/router/frontend"
)

// Server is the reportsmith HTTP server.
type Server struct {
	e *echo.Echo

	Profile *profile.Profile
}

// NewServer wires routes and middleware. The generator and exporter are
// constructed once by the caller and injected here.
func NewServer(ctx context.Context, instanceProfile *profile.Profile, generator *research.Generator, exporter *metrics.PrometheusExporter) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		e:       e,
		Profile: instanceProfile,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": instanceProfile.Version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(exporter.Handler()))

	apiService := apiv1.NewAPIV1Service(instanceProfile, generator, exporter)
	apiService.RegisterRoutes(e)

	frontendService := frontend.NewFrontendService(instanceProfile)
	frontendService.Serve(ctx, e)

	return s, nil
}

// Start begins serving in the background. Listen errors other than a normal
// shutdown are logged, not returned.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.e.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server shutdown complete")
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

// requestLogger logs one line per request in the service's slog format.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
