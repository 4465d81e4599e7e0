package model

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,62}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report wire names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("upload_status", func(fl validator.FieldLevel) bool {
		return UploadStatus(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		u := sl.Current().Interface().(Upload)
		if u.ScheduledFor.IsZero() {
			sl.ReportError(u.ScheduledFor, "scheduled_for", "ScheduledFor", "required", "")
		}
	}, Upload{})

	return v
}

// Validate checks a decoded payload against the closed domains of the entity
// model. Slices and nested structs are walked.
func Validate(v any) error {
	return validate.Struct(v)
}
