package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// TagHHMM validates a clock time written as exactly two digits, a colon and
// two digits. Only the shape is checked, not the range.
const TagHHMM = "hhmm"

// TagNotBlank rejects strings made only of whitespace.
const TagNotBlank = "notblank"

var hhmmPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields by their JSON name when they have one.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation(TagNotBlank, validators.NotBlank)
	_ = v.RegisterValidation(TagHHMM, func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HasTag reports whether any field failed on the given tag.
func (cv *CustomValidator) HasTag(err error, tag string) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, e := range validationErrors {
		if e.Tag() == tag {
			return true
		}
	}
	return false
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", TagNotBlank:
				errors[field] = field + " is required"
			case TagHHMM:
				errors[field] = field + " must use the HH:MM format"
			case "datetime":
				errors[field] = field + " must use the " + e.Param() + " format"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
