package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

func (c *Controller) ObtainToken(ctx echo.Context) error {
	var request dto.TokenObtainRequest
	if err := bindInput(ctx, &request); err != nil {
		return err
	}

	pair, err := c.services.Auth.Login(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, pair)
}

func (c *Controller) RefreshToken(ctx echo.Context) error {
	var request dto.TokenRefreshRequest
	if err := bindInput(ctx, &request); err != nil {
		return err
	}

	access, err := c.services.Auth.Refresh(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, access)
}
