package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abcall/clients/internal/core/domain"
)

// EmailTag is the validation rule for representative e-mail addresses
const EmailTag = "client_email"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

var (
	registerOnce sync.Once
	registerErr  error
	validate     *validator.Validate
)

// RegisterValidators installs the custom rules on gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		// Report JSON names so messages match what the caller sent
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		}); err != nil {
			registerErr = fmt.Errorf("failed to register %s: %w", EmailTag, err)
			return
		}
		validate = v
	})
	return registerErr
}

// BindingError turns a gin binding failure into a ValidationError.
// Missing fields are reported before invalid values.
func BindingError(err error) *domain.ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("", "Invalid request body")
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return domain.NewValidationError(fe.Field(), "Missing required field: "+fe.Field())
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "oneof":
		allowed := strings.Join(strings.Fields(fe.Param()), ", ")
		return domain.NewValidationError(fe.Field(),
			fmt.Sprintf("Invalid '%s' value. Must be one of [%s]", fe.Field(), allowed))
	case EmailTag:
		return domain.NewValidationError(fe.Field(), "Invalid email format")
	default:
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("Invalid value for field: %s", fe.Field()))
	}
}

// ParseUpdate checks a partial update body and converts it into client fields.
// Only known fields with string values are accepted.
func ParseUpdate(body map[string]any) (domain.ClientData, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, domain.NewValidationError("", "Request body must contain at least one field")
	}

	data := make(domain.ClientData, len(body))
	for _, key := range sortedKeys(body) {
		if !domain.IsClientField(key) {
			return nil, domain.NewValidationError(key, "Unknown field: "+key)
		}
		value, ok := body[key].(string)
		if !ok {
			return nil, domain.NewValidationError(key, "Field must be a string: "+key)
		}
		data[key] = value
	}

	if email, ok := data[domain.FieldEmailRep]; ok {
		if err := validate.Var(email, EmailTag); err != nil {
			return nil, domain.NewValidationError(domain.FieldEmailRep, "Invalid email format")
		}
	}

	return data, nil
}

func sortedKeys(body map[string]any) []string {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
