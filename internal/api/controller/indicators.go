package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tmabaso/sdg3health/internal/domain"
)

func (c *Controller) resolveScope(ctx echo.Context) (domain.Selection, error) {
	var sel domain.Selection
	if err := ctx.Bind(&sel); err != nil {
		return sel, err
	}
	return c.regionsService.ResolveSelection(ctx.Request().Context(), sel)
}

func (c *Controller) GetSummary(ctx echo.Context) error {
	sel, err := c.resolveScope(ctx)
	if err != nil {
		return err
	}

	type response struct {
		Level domain.Level         `json:"level"`
		Scope domain.Selection     `json:"scope"`
		Stats *domain.SummaryStats `json:"stats"`
	}

	stats, err := c.indicatorsService.Summary(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, response{Level: sel.Level(), Scope: sel, Stats: stats})
}

func (c *Controller) GetHIVIndicators(ctx echo.Context) error {
	sel, err := c.resolveScope(ctx)
	if err != nil {
		return err
	}

	panel, err := c.indicatorsService.HIVPanel(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, panel)
}

func (c *Controller) GetTBIndicators(ctx echo.Context) error {
	sel, err := c.resolveScope(ctx)
	if err != nil {
		return err
	}

	panel, err := c.indicatorsService.TBPanel(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, panel)
}

func (c *Controller) GetTargets(ctx echo.Context) error {
	sel, err := c.resolveScope(ctx)
	if err != nil {
		return err
	}

	targets, err := c.indicatorsService.Targets(ctx.Request().Context(), sel)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, targets)
}
