package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetProvinces(ctx echo.Context) error {
	provinces, err := c.regionsService.ListProvinces(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, provinces)
}

func (c *Controller) GetDistricts(ctx echo.Context) error {
	districts, err := c.regionsService.ListDistricts(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, districts)
}

func (c *Controller) GetMunicipalities(ctx echo.Context) error {
	municipalities, err := c.regionsService.ListMunicipalities(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, municipalities)
}
