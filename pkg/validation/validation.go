// Package validation checks dashboard input against the field rules of the
// link page domain and reports failures as *domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/icon"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)
)

func instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidUsername(fl.Field().String())
		})
		_ = v.RegisterValidation("hexcolor_or_empty", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || theme.IsHexColor(s)
		})
		_ = v.RegisterValidation("template", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || theme.IsTemplate(s)
		})
		_ = v.RegisterValidation("font_size", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || theme.IsFontSize(s)
		})
		_ = v.RegisterValidation("page_width", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || theme.IsPageWidth(s)
		})
		_ = v.RegisterValidation("icon_source", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || icon.Known(domain.IconSource(s))
		})
		_ = v.RegisterValidation("icon_style", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || domain.IconStyle(s).Valid()
		})
		_ = v.RegisterValidation("block_kind", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseBlockKind(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})
	return validateInst
}

// ValidUsername reports whether s can be used as a public handle.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// Struct validates v using its `validate` tags.
func Struct(v any) error {
	return convert(instance().Struct(v))
}

func convert(err error) error {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return &domain.ValidationError{Field: fe.Field(), Reason: reason(fe)}
	}
	return &domain.ValidationError{Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "username":
		return "must be 3-32 letters, digits, dots, dashes or underscores"
	case "hexcolor_or_empty":
		return "must be a hex color like #6366F1"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
