package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("country_code", "iso3166_1_alpha2")
	v.RegisterCustomTypeFunc(nullDecimalValue, decimal.NullDecimal{})
	_ = v.RegisterValidation("decimal_gte", decimalRule(func(cmp int) bool { return cmp >= 0 }))
	_ = v.RegisterValidation("decimal_lte", decimalRule(func(cmp int) bool { return cmp <= 0 }))
	_ = v.RegisterValidation("decimal_lt", decimalRule(func(cmp int) bool { return cmp < 0 }))
	_ = v.RegisterValidation("max_decimals", maxDecimals)

	return &Validator{validate: v}
}

// nullDecimalValue unwraps optional decimals so the decimal_* rules see the
// exact value; an absent decimal is nil and skipped by omitempty.
func nullDecimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
		return d.Decimal
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return d, ok
}

// decimalRule compares the field against the tag parameter without going
// through float64, so 5.00000000000000001 is still greater than 5.
func decimalRule(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fieldDecimal(fl)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(d.Cmp(bound))
	}
}

func maxDecimals(fl validator.FieldLevel) bool {
	limit, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	// Trailing zeros do not count: 2.50 has one decimal place.
	return d.Equal(d.Truncate(int32(limit)))
}

func (cv *Validator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return constants.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("ensure this list has at least %s items", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "gte", "decimal_gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte", "decimal_lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "lt", "decimal_lt":
		return fmt.Sprintf("ensure this value is less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	case "uppercase":
		return "ensure this value is upper case"
	case "country_code", "iso3166_1_alpha2":
		return "enter a valid ISO 3166-1 alpha-2 country code"
	case "http_url":
		return "enter a valid URL"
	case "max_decimals":
		return fmt.Sprintf("ensure that there are no more than %s decimal places", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
