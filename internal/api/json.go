package api

import (
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

// relatedFields hold primary keys of other resources.
var relatedFields = map[string]bool{"region": true, "wine": true, "store": true}

var (
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
	dateType        = reflect.TypeOf(domain.Date{})
)

// sonicSerializer replaces echo's encoding/json based serializer.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read request body").SetInternal(err)
	}

	if err = sonic.ConfigStd.Unmarshal(body, i); err != nil {
		if fields := fieldTypeErrors(body, i); len(fields) > 0 {
			return constants.NewValidationError(fields)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "JSON parse error").SetInternal(err)
	}
	return nil
}

// fieldTypeErrors decodes every top-level member of body on its own into the
// type of the matching field of dst and reports the members that do not fit.
func fieldTypeErrors(body []byte, dst interface{}) map[string][]string {
	root, err := sonic.Get(body)
	if err != nil || root.Type() != ast.V_OBJECT {
		return nil
	}
	targets := jsonFieldTypes(reflect.TypeOf(dst))

	fields := make(map[string][]string)
	_ = root.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		if path.Key == nil {
			return true
		}
		typ, ok := targets[*path.Key]
		if !ok {
			return true
		}
		raw, err := node.Raw()
		if err != nil {
			return true
		}
		if err = sonic.ConfigStd.UnmarshalFromString(raw, reflect.New(typ).Interface()); err != nil {
			fields[*path.Key] = []string{typeMessage(*path.Key, typ, raw)}
		}
		return true
	})
	return fields
}

// jsonFieldTypes maps the json names of a struct's fields to their types.
func jsonFieldTypes(t reflect.Type) map[string]reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	types := make(map[string]reflect.Type)
	if t.Kind() != reflect.Struct {
		return types
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		types[name] = f.Type
	}
	return types
}

func typeMessage(name string, t reflect.Type, raw string) string {
	got := jsonKind(raw)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch {
	case t == nullDecimalType:
		return "a valid number is required"
	case t == dateType:
		return "date has wrong format, use YYYY-MM-DD"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if relatedFields[name] {
			return "incorrect type, expected pk value, received " + got
		}
		return "a valid integer is required"
	case reflect.Float32, reflect.Float64:
		return "a valid number is required"
	case reflect.Bool:
		return "must be a valid boolean"
	case reflect.String:
		return "not a valid string"
	case reflect.Slice:
		return `expected a list of items but got type "` + got + `"`
	default:
		return "incorrect type, received " + got
	}
}

func jsonKind(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "unknown"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
