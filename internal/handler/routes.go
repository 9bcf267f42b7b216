package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/searchconfirm/internal/ratelimit"
)

func RegisterRoutes(e *echo.Echo, h *SearchHandler, limiter *ratelimit.ClientLimiter) {
	api := e.Group("/api/v1")
	if limiter != nil {
		api.Use(ratelimit.Middleware(limiter))
	}
	api.POST("/searches", h.Create)
	api.GET("/searches/:id", h.Get)
	api.GET("/catalog", CatalogHandler)
	e.GET("/health", HealthHandler)
}
