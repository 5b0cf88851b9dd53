package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks cfg against its `validate` struct tags, returning a
// single error describing every field-level violation found.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", fe.Namespace(), fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation %q", fe.Namespace(), fe.Tag())
	}
}
