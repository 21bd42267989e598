package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName: release_date -> Release Date
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError hanya melaporkan field pertama yang gagal, sama seperti
// form di client yang menyorot satu field sekaligus.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(
			CodeInvalidInput,
			"Invalid input",
			http.StatusBadRequest,
		)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "min", "gte":
		return rangeError(field, e, "at least")
	case "max", "lte":
		return rangeError(field, e, "at most")
	case "oneof":
		return New(CodeInvalidInput,
			fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", ")),
			http.StatusBadRequest)
	default:
		return InvalidField(field)
	}
}

func rangeError(field string, e validator.FieldError, bound string) *AppError {
	var msg string
	switch e.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		msg = fmt.Sprintf("%s must have %s %s item(s)", field, bound, e.Param())
	case reflect.String:
		msg = fmt.Sprintf("%s must be %s %s character(s)", field, bound, e.Param())
	default:
		msg = fmt.Sprintf("%s must be %s %s", field, bound, e.Param())
	}
	return New(CodeInvalidInput, msg, http.StatusBadRequest)
}
