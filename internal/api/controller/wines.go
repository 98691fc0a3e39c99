package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

func (c *Controller) ListWines(ctx echo.Context) error {
	wines, err := c.services.Wines.ListWines(ctx.Request().Context(), listOpts(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, wines)
}

func (c *Controller) GetWine(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	wine, err := c.services.Wines.GetWine(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, wine)
}

func (c *Controller) CreateWine(ctx echo.Context) error {
	var in dto.WineInput
	if err := bindInput(ctx, &in); err != nil {
		return err
	}

	wine, err := c.services.Wines.CreateWine(ctx.Request().Context(), in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, wine)
}

func (c *Controller) UpdateWine(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var in dto.WineInput
	if ctx.Request().Method == http.MethodPatch {
		current, err := c.services.Wines.GetWine(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		in = dto.WineInputFrom(current)
	}
	if err = bindInput(ctx, &in); err != nil {
		return err
	}

	wine, err := c.services.Wines.UpdateWine(ctx.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, wine)
}

func (c *Controller) DeleteWine(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err = c.services.Wines.DeleteWine(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
