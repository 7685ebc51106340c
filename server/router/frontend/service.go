// Package frontend serves the embedded single-page UI.
package frontend

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/reportsmith/internal/profile"
	"github.com/hrygo/reportsmith/internal/util"
)

type FrontendService struct {
	Profile *profile.Profile
}

func NewFrontendService(profile *profile.Profile) *FrontendService {
	return &FrontendService{
		Profile: profile,
	}
}

func (*FrontendService) Serve(_ context.Context, e *echo.Echo) {
	// Skipper for Gzip: don't compress API responses (PDF bytes gain nothing)
	gzipSkipper := func(c echo.Context) bool {
		return util.HasPrefixes(c.Path(), "/api", "/metrics", "/healthz")
	}

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:   5,
		Skipper: gzipSkipper,
	}))

	skipper := func(c echo.Context) bool {
		// Skip API routes.
		if util.HasPrefixes(c.Path(), "/api", "/metrics", "/healthz") {
			return true
		}

		// Security: Prevent MIME type sniffing
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")

		// The page is regenerated per release; never let the browser cache a
		// stale copy.
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		return false
	}

	distFS, err := fs.Sub(embeddedFiles, "dist")
	if err != nil {
		panic(err)
	}

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:       "/",
		Filesystem: http.FS(distFS),
		HTML5:      true,
		Skipper:    skipper,
	}))
}
