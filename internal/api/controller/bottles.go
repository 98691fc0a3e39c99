package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

const (
	queryWine     = "wine"
	queryStore    = "store"
	queryConsumed = "consumed"
)

func (c *Controller) ListBottles(ctx echo.Context) error {
	opts := store.ListBottlesOpts{ListOpts: listOpts(ctx)}

	var err error
	if opts.WineID, err = queryInt64(ctx, queryWine); err != nil {
		return err
	}
	if opts.StoreID, err = queryInt64(ctx, queryStore); err != nil {
		return err
	}
	if opts.Consumed, err = queryBool(ctx, queryConsumed); err != nil {
		return err
	}

	bottles, err := c.services.Bottles.ListBottles(ctx.Request().Context(), opts)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bottles)
}

func (c *Controller) GetBottle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	bottle, err := c.services.Bottles.GetBottle(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bottle)
}

func (c *Controller) CreateBottle(ctx echo.Context) error {
	var in dto.BottleInput
	if err := bindInput(ctx, &in); err != nil {
		return err
	}

	bottle, err := c.services.Bottles.CreateBottle(ctx.Request().Context(), in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, bottle)
}

func (c *Controller) UpdateBottle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var in dto.BottleInput
	if ctx.Request().Method == http.MethodPatch {
		current, err := c.services.Bottles.GetBottle(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		in = dto.BottleInputFrom(current)
	}
	if err = bindInput(ctx, &in); err != nil {
		return err
	}

	bottle, err := c.services.Bottles.UpdateBottle(ctx.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bottle)
}

func (c *Controller) DeleteBottle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	if err = c.services.Bottles.DeleteBottle(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) ConsumeBottle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	bottle, err := c.services.Bottles.Consume(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bottle)
}

func (c *Controller) UndoConsumeBottle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	bottle, err := c.services.Bottles.UndoConsume(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, bottle)
}
