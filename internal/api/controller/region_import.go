package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

// ImportRegions backfills regions from the tables of the given pages.
func (c *Controller) ImportRegions(ctx echo.Context) error {
	var request dto.RegionImportRequest
	if err := bindInput(ctx, &request); err != nil {
		return err
	}

	resp, err := c.services.RegionImport.Import(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
