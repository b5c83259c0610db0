// Package inputval provides struct validation with user-facing messages,
// built on go-playground/validator.
//
// Define an input struct with validate tags, populate it, and call Validate
// to get messages suitable for display next to a form or in a startup error.
//
// Example:
//
//	type PreferencesInput struct {
//	    VolumeDays int `form:"volume_days" validate:"daywindow" label:"Volume window"`
//	    TopLimit   int `form:"top_limit" validate:"min=1,max=50" label:"Top protocols"`
//	}
//
//	if res := inputval.Validate(input); res.HasErrors() {
//	    renderWithError(w, r, res.First())
//	    return
//	}
package inputval

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Day windows accepted for time-series panels.
const (
	MinDays = 1
	MaxDays = 365
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Err returns the joined messages as an error, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return errors.New(r.All())
}

// ByField returns the first message per field name.
func (r *Result) ByField() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	customValidator *validator.Validate
	validatorOnce   sync.Once
)

// getValidator returns the singleton validator with custom rules.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report fields by their form (or json) name.
		v.RegisterTagNameFunc(fieldName)

		// daywindow: an int number of days in [MinDays, MaxDays]
		_ = v.RegisterValidation("daywindow", func(fl validator.FieldLevel) bool {
			d := fl.Field().Int()
			return d >= MinDays && d <= MaxDays
		})

		// httpurl: an absolute http:// or https:// URL with a host
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})

		customValidator = v
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
// The struct should have `validate` tags for rules and optional `label` tags
// for user-friendly field names.
//
// Custom validation rules (registered by this package):
//   - daywindow: int between MinDays and MaxDays
//   - httpurl: absolute http:// or https:// URL with a host
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.Errors = append(result.Errors, FieldError{Message: err.Error()})
		return result
	}

	labels := fieldLabels(s)
	for _, e := range verrs {
		label := labels[e.Field()]
		if label == "" {
			label = e.Field()
		}
		result.Errors = append(result.Errors, FieldError{
			Field:   e.Field(),
			Label:   label,
			Message: formatMessage(label, e.Tag(), e.Param(), e.Kind()),
		})
	}
	return result
}

// fieldName returns the name a field is reported under: its form tag, then
// its json tag, then the Go name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		if v := f.Tag.Get(tag); v != "" {
			name := strings.Split(v, ",")[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
	}
	return f.Name
}

// fieldLabels extracts the "label" tag from struct fields, keyed by the
// reported field name.
func fieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName(field)] = label
		}
	}
	return labels
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string, kind reflect.Kind) string {
	numeric := kind >= reflect.Int && kind <= reflect.Float64
	switch rule {
	case "required":
		return label + " is required."
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min", "gte":
		if numeric {
			return label + " must be at least " + param + "."
		}
		return label + " must be at least " + param + " characters."
	case "max", "lte":
		if numeric {
			return label + " must be at most " + param + "."
		}
		return label + " must be at most " + param + " characters."
	case "daywindow":
		return label + " must be between 1 and 365 days."
	case "httpurl":
		return label + " must be a valid URL starting with http:// or https://."
	default:
		return label + " is invalid."
	}
}

// IsValidHTTPURL checks if the given string is an absolute http:// or
// https:// URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
