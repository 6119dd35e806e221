package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http/httpguts"

	"github.com/kbukum/restkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Config structs carry mapstructure keys, so report those.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
			if name == "" || name == "-" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("header", func(fl validator.FieldLevel) bool {
			return httpguts.ValidHeaderFieldName(fl.Field().String())
		})
		_ = validate.RegisterValidation("method", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS":
				return true
			}
			return false
		})
	})
	return validate
}

// Struct validates s against its validate tags. Failures are returned as an
// INVALID_CONFIG *errors.AppError whose "fields" detail maps each dotted key
// to its messages.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}

	fields := make(map[string][]string, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		key := fieldKey(e.Namespace())
		msg := message(e)
		fields[key] = append(fields[key], msg)
		messages = append(messages, key+": "+msg)
	}
	return errors.InvalidConfig(strings.Join(messages, "; ")).WithDetail("fields", fields)
}

// Fields returns the per-key messages of an error produced by Struct.
func Fields(err error) map[string][]string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return nil
	}
	fields, _ := appErr.Details["fields"].(map[string][]string)
	return fields
}

// fieldKey drops the root type name from a validator namespace.
func fieldKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "header":
		return "must be a valid header name"
	case "method":
		return "must be an HTTP method"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
