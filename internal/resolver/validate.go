package resolver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/models"
)

const (
	DefaultSize    = "1024x1024"
	DefaultQuality = "standard"
	DefaultStyle   = models.StyleRealistic
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Prepare trims and validates req, then fills in defaults for optional
// fields. The returned request is what the cache key and prompt are built from.
func Prepare(req models.ImageRequest) (models.ImageRequest, error) {
	req.Era = strings.TrimSpace(req.Era)
	req.Topic = strings.TrimSpace(req.Topic)
	req.Size = strings.ToLower(strings.TrimSpace(req.Size))
	req.Quality = strings.ToLower(strings.TrimSpace(req.Quality))
	req.Style = models.Style(strings.ToLower(strings.TrimSpace(string(req.Style))))
	req.StyleHints = strings.TrimSpace(req.StyleHints)

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return req, &apperrors.ValidationError{Field: fe.Field(), Reason: describe(fe)}
		}
		return req, &apperrors.ValidationError{Reason: err.Error()}
	}

	if req.Size == "" {
		req.Size = DefaultSize
	}
	if req.Quality == "" {
		req.Quality = DefaultQuality
	}
	if req.Style == "" {
		req.Style = DefaultStyle
	}
	return req, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
