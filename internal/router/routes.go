package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/BYRON-lang/dashboard/internal/config"
	"github.com/BYRON-lang/dashboard/internal/handler"
	middlewarepkg "github.com/BYRON-lang/dashboard/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Websites *handler.WebsitesHandler
	Usage    *handler.UsageHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.GET("/websites", handlers.Websites.List)
	e.POST("/websites", handlers.Websites.Submit, middlewarepkg.SubmitRateLimiter(cfg.RateLimitSubmit))
	e.DELETE("/websites/:id", handlers.Websites.Delete)

	e.GET("/storage/usage", handlers.Usage.Usage)
}
