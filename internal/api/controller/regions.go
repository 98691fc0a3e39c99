package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

func (c *Controller) ListRegions(ctx echo.Context) error {
	regions, err := c.services.Regions.ListRegions(ctx.Request().Context(), listOpts(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, regions)
}

func (c *Controller) GetRegion(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	region, err := c.services.Regions.GetRegion(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, region)
}

func (c *Controller) CreateRegion(ctx echo.Context) error {
	var in dto.RegionInput
	if err := bindInput(ctx, &in); err != nil {
		return err
	}

	region, err := c.services.Regions.CreateRegion(ctx.Request().Context(), in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, region)
}

func (c *Controller) UpdateRegion(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var in dto.RegionInput
	if ctx.Request().Method == http.MethodPatch {
		current, err := c.services.Regions.GetRegion(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		in = dto.RegionInputFrom(current)
	}
	if err = bindInput(ctx, &in); err != nil {
		return err
	}

	region, err := c.services.Regions.UpdateRegion(ctx.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, region)
}

func (c *Controller) DeleteRegion(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err = c.services.Regions.DeleteRegion(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
