package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/lead-discovery/internal/auth"
	"github.com/octobees/lead-discovery/internal/config"
	"github.com/octobees/lead-discovery/internal/entity"
	"github.com/octobees/lead-discovery/internal/handler"
	middlewarepkg "github.com/octobees/lead-discovery/internal/middleware"
)

// Search routes share one rate limit bucket per client.
const (
	PathSearch       = "/leads/search"
	PathPromptSearch = "/leads/prompt-search"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth  *handler.AuthHandler
	Leads *handler.LeadsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{
			"status":             "ok",
			"discovery_enabled":  cfg.Discovery.APIKey != "",
			"discovery_grounded": cfg.Discovery.Grounding,
		})
	})

	e.GET("/categories", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "", entity.Categories())
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/login", handlers.Auth.Login)

	leads := e.Group("/leads",
		middlewarepkg.JWT(jwtManager),
		middlewarepkg.RequireRole(cfg.Operator.Role, "admin"),
		middlewarepkg.RateLimiter(cfg.RateLimitSearch, PathSearch, PathPromptSearch),
	)
	leads.POST("/search", handlers.Leads.Search)
	leads.POST("/prompt-search", handlers.Leads.PromptSearch)
}
