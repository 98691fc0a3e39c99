package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/pkg/constants"
)

// Binder reads only the request body. Path and query parameters are parsed
// explicitly by the controllers.
type Binder struct {
	body echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	if err := b.body.BindBody(c, i); err != nil {
		var coded *constants.CodedError
		if errors.As(err, &coded) {
			return coded
		}

		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg = echoMessage(he)
		}
		return constants.NewFieldError(constants.NonFieldErrors, msg)
	}
	return nil
}
