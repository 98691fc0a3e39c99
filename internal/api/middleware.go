package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
)

// AuthMiddleware requires a valid access token in the Authorization header.
func (svc *APIService) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw, ok := bearerToken(ctx.Request().Header.Get(constants.HeaderAuthorization))
		if !ok {
			return constants.ErrUnauthorized
		}

		userID, err := svc.services.Auth.Authenticate(ctx.Request().Context(), raw)
		if err != nil {
			logger.Debugf(ctx.Request().Context(), "authenticate: %s", err.Error())
			return err
		}

		ctx.Set(constants.CtxKeyUserID, userID)

		return next(ctx)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, constants.AuthScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
