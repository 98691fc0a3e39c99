package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

const (
	paramID       = "id"
	querySearch   = "search"
	queryOrdering = "ordering"
)

// pathID parses the :id segment. Anything that is not a positive integer
// cannot name a row, so it is reported as not found.
func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return 0, constants.ErrDBNotFound
	}
	return id, nil
}

func listOpts(ctx echo.Context) store.ListOpts {
	return store.ListOpts{
		Search:   ctx.QueryParam(querySearch),
		Ordering: ctx.QueryParam(queryOrdering),
	}
}

func queryInt64(ctx echo.Context, name string) (*int64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, constants.NewFieldError(name, "enter a whole number")
	}
	return &v, nil
}

func queryBool(ctx echo.Context, name string) (*bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, constants.NewFieldError(name, "enter true or false")
	}
	return &v, nil
}

type normalizer interface {
	Normalize()
}

// bindInput reads the body over in, normalizes it when the input knows how
// and validates the result.
func bindInput(ctx echo.Context, in interface{}) error {
	if err := ctx.Bind(in); err != nil {
		return err
	}
	if n, ok := in.(normalizer); ok {
		n.Normalize()
	}
	return ctx.Validate(in)
}
