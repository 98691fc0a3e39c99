package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

const formImage = "image"

// AnalyzeLabel suggests wine fields for an uploaded label photo.
func (c *Controller) AnalyzeLabel(ctx echo.Context) error {
	header, err := ctx.FormFile(formImage)
	if err != nil {
		return constants.NewFieldError(formImage, "no file was submitted")
	}

	file, err := header.Open()
	if err != nil {
		return constants.NewFieldError(formImage, "the submitted file could not be read")
	}
	defer file.Close()

	result, err := c.services.Labels.Analyze(ctx.Request().Context(), file)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}
