package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
)

// FlushCache drops the query caches. Meant for the operator after the
// external loader refreshes municipal_health.
func (c *Controller) FlushCache(ctx echo.Context) error {
	c.cache.Flush()
	logger.Info(ctx.Request().Context(), "query caches flushed")

	return ctx.JSON(http.StatusOK, map[string]string{"status": "flushed"})
}
