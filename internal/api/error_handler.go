package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := errorResponse(err)
	if resp.Code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Request().URL.Path, err.Error())
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resp.Code)
		return
	}
	_ = c.JSON(resp.Code, resp)
}

func errorResponse(err error) domain.ErrorResponse {
	var ce *constants.CodedError
	if errors.As(err, &ce) {
		return domain.ErrorResponse{
			Message: ce.Message(),
			Code:    ce.Code(),
			Fields:  ce.Fields(),
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return domain.ErrorResponse{
			Message: echoMessage(he),
			Code:    he.Code,
		}
	}

	return domain.ErrorResponse{
		Message: http.StatusText(http.StatusInternalServerError),
		Code:    http.StatusInternalServerError,
	}
}

func echoMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return fmt.Sprint(he.Message)
}
