// Package router registers the HTTP routes of the dashboard server.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/handler"
	"github.com/iliyamo/movie-analytics/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAnalytics registers the read-only dashboard queries under
// /v1/analytics.  cache wraps every GET; refresh is ADMIN only.
func RegisterAnalytics(e *echo.Echo, h *handler.AnalyticsHandler, cache echo.MiddlewareFunc, jwtSecret string) {
	g := e.Group("/v1/analytics")
	g.GET("/overview", h.Overview, cache)
	g.GET("/genres", h.Genres, cache)
	g.GET("/studios", h.Studios, cache)
	g.GET("/trends", h.Trends, cache)
	g.GET("/sales", h.Sales, cache)
	g.GET("/monthly", h.Monthly, cache)
	g.GET("/report", h.Report, cache)
	g.GET("/top", h.Top, cache)
	g.GET("/export", h.Export, cache)

	g.POST("/refresh", h.Refresh, middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
}

// RegisterAuth registers the login endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/auth/login", a.Login)
}

// RegisterTickets registers the ticket inventory.  Listing is public,
// booking needs any valid token and changing the inventory needs ADMIN.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, jwtSecret string) {
	e.GET("/v1/tickets", h.List)
	e.GET("/v1/tickets/:title", h.Get)

	authn := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireRole("ADMIN")
	e.POST("/v1/tickets/:title/book", h.Book, authn, middleware.RequireRole("ADMIN", "VIEWER"))
	e.POST("/v1/tickets", h.Create, authn, admin)
	e.POST("/v1/tickets/:title/add", h.AddTickets, authn, admin)
}
