package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"agency-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError is the client-facing shape of a single failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by the write path when a document violates its schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	return "validation error: " + e.Fields[0].Field + ": " + e.Fields[0].Message
}

// NewError builds a single-field validation error.
func NewError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

var (
	emailRegex = regexp.MustCompile(`^\w+([.+-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s().-]{7,20}$`)
)

var enums = map[string][]string{
	"blogCategory":       models.BlogCategories,
	"serviceCategory":    models.ServiceCategories,
	"industry":           models.Industries,
	"budget":             models.Budgets,
	"timeline":           models.Timelines,
	"contactSource":      models.ContactSources,
	"testimonialSource":  models.TestimonialSources,
	"testimonialService": models.TestimonialServices,
	"pricingModel":       models.PricingModels,
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return emailRegex.MatchString(value)
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return phoneRegex.MatchString(value)
	})

	v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return models.Contains(enums[fl.Param()], value)
	})

	return &Validator{v: v}
}

// Check validates s and converts constraint failures into *Error.
func (v *Validator) Check(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &Error{Fields: Details(ve)}
	}
	return err
}

// Details renders validator errors as {field, message} pairs keyed by JSON
// path, e.g. "seo.metaTitle".
func Details(errs validator.ValidationErrors) []FieldError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		out = append(out, FieldError{Field: field, Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s cannot have more than %s items", name, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s cannot be greater than %s", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot be greater than %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "enum":
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(enums[fe.Param()], ", "))
	case "mailbox", "email":
		return "Please enter a valid email"
	case "phone":
		return "Please enter a valid phone number"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "lowercase":
		return fmt.Sprintf("%s must be lowercase", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
