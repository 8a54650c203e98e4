package handlers

import (
	"net/http"

	"github.com/anonto42/pulseblog/internal/cache"
	"github.com/labstack/echo/v4"
)

// CacheHandler exposes the page cache invalidation entry point. Clearing is
// an operator action; content mutations never touch the cache.
type CacheHandler struct {
	pageCache cache.PageCache
}

// NewCacheHandler creates a new CacheHandler
func NewCacheHandler(pageCache cache.PageCache) *CacheHandler {
	return &CacheHandler{pageCache: pageCache}
}

// RegisterCacheRoutes registers the operator cache routes
func (h *CacheHandler) RegisterCacheRoutes(e *echo.Echo) {
	e.POST("/internal/cache/clear/", h.ClearPageCache)
}

// ClearPageCache drops every cached feed page
func (h *CacheHandler) ClearPageCache(c echo.Context) error {
	if err := h.pageCache.Clear(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
