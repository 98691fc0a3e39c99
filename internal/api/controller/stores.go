package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

func (c *Controller) ListStores(ctx echo.Context) error {
	stores, err := c.services.Stores.ListStores(ctx.Request().Context(), listOpts(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, stores)
}

func (c *Controller) GetStore(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	st, err := c.services.Stores.GetStore(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, st)
}

func (c *Controller) CreateStore(ctx echo.Context) error {
	var in dto.StoreInput
	if err := bindInput(ctx, &in); err != nil {
		return err
	}

	st, err := c.services.Stores.CreateStore(ctx.Request().Context(), in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, st)
}

func (c *Controller) UpdateStore(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var in dto.StoreInput
	if ctx.Request().Method == http.MethodPatch {
		current, err := c.services.Stores.GetStore(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		in = dto.StoreInputFrom(current)
	}
	if err = bindInput(ctx, &in); err != nil {
		return err
	}

	st, err := c.services.Stores.UpdateStore(ctx.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, st)
}

func (c *Controller) DeleteStore(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err = c.services.Stores.DeleteStore(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
