package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
)

type healthResponse struct {
	Status   string `json:"status"`
	DBStatus string `json:"db_status"`
	RowCount int64  `json:"row_count,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GetHealth pings the database and reports the backing table's row count,
// mirroring what the dashboard checks before serving anything.
func (c *Controller) GetHealth(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.store.Ping(reqCtx); err != nil {
		logger.Errorf(reqCtx, "health ping: %s", err.Error())
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			DBStatus: "connection_error",
			Error:    constants.ErrDataUnavailable.Error(),
		})
	}

	count, err := c.store.CountRows(reqCtx)
	if err != nil {
		logger.Errorf(reqCtx, "health count: %s", err.Error())
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			DBStatus: "table_unavailable",
			Error:    constants.ErrDataUnavailable.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, healthResponse{
		Status:   "ok",
		DBStatus: "connected",
		RowCount: count,
	})
}
