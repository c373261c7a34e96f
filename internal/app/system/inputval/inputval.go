// Package inputval provides payload validation using go-playground/validator.
//
// Define an input struct with validate tags, decode the request into it, and
// call Validate to get user-friendly error messages. Field names in results
// follow the json tag; messages use the optional label tag.
//
// Example:
//
//	type loginInput struct {
//	    Email    string `json:"email" validate:"required,email" label:"Email"`
//	    Password string `json:"password" validate:"required" label:"Password"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    jsonutil.BadRequest(w, res.First())
//	    return
//	}
package inputval

import (
	"errors"
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
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

// Err returns the first message as an InvalidInput error, or nil.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apperr.InvalidInput(r.First())
}

var (
	instance     *validator.Validate
	instanceOnce sync.Once
)

// getValidator returns the shared validator with custom rules registered.
func getValidator() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// httpurl: validates that string is a valid http/https URL
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})

		// objectid: validates that string is a valid MongoDB ObjectID hex
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})

		// servicetype: value is one of the service type literals
		_ = v.RegisterValidation("servicetype", func(fl validator.FieldLevel) bool {
			return models.IsValidServiceType(fl.Field().String())
		})

		// categorytype: value names a category bucket
		_ = v.RegisterValidation("categorytype", func(fl validator.FieldLevel) bool {
			return models.IsValidCategoryType(fl.Field().String())
		})

		instance = v
	})
	return instance
}

// Validate validates a struct and returns a Result with user-friendly errors.
//
// Besides the built-in validator rules, these are available:
//   - httpurl: valid http:// or https:// URL
//   - objectid: valid MongoDB ObjectID hex string
//   - servicetype: one of the service type literals
//   - categorytype: one of the category bucket types
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.Errors = append(result.Errors, FieldError{Message: "Invalid input."})
		return result
	}

	labels := getFieldLabels(s)
	for _, e := range verrs {
		label := labels[e.Field()]
		if label == "" {
			label = e.Field()
		}
		result.Errors = append(result.Errors, FieldError{
			Field:   e.Field(),
			Label:   label,
			Message: formatMessage(label, e.Tag(), e.Param()),
		})
	}
	return result
}

// getFieldLabels extracts the "label" tag from struct fields, keyed by json name.
func getFieldLabels(s any) map[string]string {
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

		fieldName := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				fieldName = parts[0]
			}
		}

		if label := field.Tag.Get("label"); label != "" {
			labels[fieldName] = label
		}
	}

	return labels
}

// formatMessage creates a user-friendly message for a validation rule.
func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "gte":
		return label + " must be at least " + param + "."
	case "lte":
		return label + " must be at most " + param + "."
	case "httpurl", "url":
		return label + " must be a valid URL starting with http:// or https://."
	case "objectid":
		return label + " is not a valid ID."
	case "servicetype":
		return label + " must be one of: " + strings.Join(models.ServiceTypes, ", ") + "."
	case "categorytype":
		return label + " must be one of: " + strings.Join(models.CategoryTypes, ", ") + "."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail checks if the given string has a valid email format.
//
// This function uses Go's net/mail.ParseAddress for RFC 5322 compliant validation.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <email>" format; only bare addresses pass.
	return addr.Address == email
}

// IsValidHTTPURL checks if the given string is a valid http:// or https:// URL.
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

// IsValidObjectID checks if the given string is a valid MongoDB ObjectID hex.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
