// Package request holds the binding helpers shared by every handler.
package request

import (
	"errors"
	"io"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cuti-management/backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSON decodes the body into obj and validates it. An empty body is
// validated as a zero value so callers still get per-field messages.
func BindJSON(c *gin.Context, obj any) *apperror.AppError {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		if verr := binding.Validator.ValidateStruct(obj); verr != nil {
			return apperror.MapValidationError(verr)
		}
		return nil
	}
	return apperror.MapValidationError(err)
}

// BindQuery binds and validates query string parameters. Values that do not
// parse into the target type are reported against their query key.
func BindQuery(c *gin.Context, obj any) *apperror.AppError {
	err := c.ShouldBindQuery(obj)
	if err == nil {
		return nil
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if field, kind, ok := queryField(reflect.TypeOf(obj), c.Request.URL.Query(), numErr.Num); ok {
			return apperror.NewTypeError(field, kind)
		}
	}
	return apperror.MapValidationError(err)
}

// queryField finds the form-tagged field whose query value is raw.
// Embedded structs are searched too.
func queryField(t reflect.Type, values url.Values, raw string) (string, reflect.Kind, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", reflect.Invalid, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if name, kind, ok := queryField(f.Type, values, raw); ok {
				return name, kind, true
			}
			continue
		}
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if slices.Contains(values[name], raw) {
			return name, f.Type.Kind(), true
		}
	}
	return "", reflect.Invalid, false
}
