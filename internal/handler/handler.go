package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "dcover/internal/errors"
)

// CustomValidator wraps validator for Echo and reports failures with the
// JSON field name.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation("Invalid request")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.Validation("%s is required", fe.Field())
	case "max":
		return apperrors.Validation("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return apperrors.Validation("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return apperrors.Validation("%s is invalid", fe.Field())
	}
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return c.Validate(req)
}

// idParam parses a positive integer path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid %s", name)
	}
	return uint(id), nil
}
