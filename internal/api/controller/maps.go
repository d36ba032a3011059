package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tmabaso/sdg3health/internal/domain"
)

type mapRequest struct {
	domain.Selection
	Indicator string `query:"indicator"`
}

func (c *Controller) GetMap(ctx echo.Context) error {
	var req mapRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if req.Indicator == "" {
		req.Indicator = string(domain.LayerHealthWorkerDensity)
	}

	reqCtx := ctx.Request().Context()
	sel, err := c.regionsService.ResolveSelection(reqCtx, req.Selection)
	if err != nil {
		return err
	}

	artifact, err := c.mapsService.Choropleth(reqCtx, sel, domain.LayerID(req.Indicator))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, artifact)
}

func (c *Controller) GetMapLayers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.mapsService.Layers())
}
