package validate

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-inventory/internal/apperr"
)

// Context keys under which the cleaned input maps are stored.
const (
	ctxBody   = "validated_body"
	ctxParams = "validated_params"
	ctxQuery  = "validated_query"
)

// Request returns middleware that validates up to three input surfaces
// against their schemas (nil skips a surface). Violations from every
// surface are concatenated and the request is rejected with a single
// aggregated 400 before the handler runs; on success the cleaned maps
// are attached to the context for the handler to read.
func Request(body, params, query *Schema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var violations []string

			if body != nil {
				in := map[string]any{}
				if r := c.Request().Body; r != nil {
					if err := json.NewDecoder(r).Decode(&in); err != nil && err != io.EOF {
						violations = append(violations, "request body must be valid JSON")
						in = map[string]any{}
					}
				}
				out, v := body.Apply(in)
				violations = append(violations, v...)
				c.Set(ctxBody, out)
			}

			if params != nil {
				in := map[string]any{}
				for i, name := range c.ParamNames() {
					in[name] = c.ParamValues()[i]
				}
				out, v := params.Apply(in)
				violations = append(violations, v...)
				c.Set(ctxParams, out)
			}

			if query != nil {
				in := map[string]any{}
				for name, vals := range c.QueryParams() {
					if len(vals) > 0 {
						in[name] = vals[0]
					}
				}
				out, v := query.Apply(in)
				violations = append(violations, v...)
				c.Set(ctxQuery, out)
			}

			if len(violations) > 0 {
				return apperr.Validation(violations)
			}
			return next(c)
		}
	}
}

// Body returns the cleaned body map attached by Request.
func Body(c echo.Context) map[string]any { return fromCtx(c, ctxBody) }

// Params returns the cleaned path-param map attached by Request.
func Params(c echo.Context) map[string]any { return fromCtx(c, ctxParams) }

// Query returns the cleaned query map attached by Request.
func Query(c echo.Context) map[string]any { return fromCtx(c, ctxQuery) }

func fromCtx(c echo.Context, key string) map[string]any {
	if m, ok := c.Get(key).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// ----- typed accessors for handlers -----

// Str reads a string field, returning "" when absent.
func Str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// StrPtr reads a string field, returning nil when absent so callers can
// distinguish "not provided" from "provided empty".
func StrPtr(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

// Int reads an int field, returning 0 when absent.
func Int(m map[string]any, key string) int {
	n, _ := m[key].(int)
	return n
}

// Uint64 reads an int field as uint64, returning 0 when absent.
func Uint64(m map[string]any, key string) uint64 {
	if n, ok := m[key].(int); ok && n > 0 {
		return uint64(n)
	}
	return 0
}

// FloatPtr reads a float field, returning nil when absent.
func FloatPtr(m map[string]any, key string) *float64 {
	switch t := m[key].(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	}
	return nil
}
