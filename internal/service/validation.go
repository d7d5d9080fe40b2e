package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// validateRequest checks msg against its validate tags and returns a
// CodeInvalidArgument error naming the first failing field.
func validateRequest(msg any) error {
	if err := getValidator().Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, formatValidationError(err))
	}
	return nil
}

// validateDescription enforces a non-empty description on submitted expenses.
func validateDescription(description string) error {
	if err := getValidator().Var(strings.TrimSpace(description), "required,max=200"); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("description is required (max 200 characters)"))
	}
	return nil
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "email":
		return fmt.Errorf("%s must be a valid email address", fe.Field())
	case "min", "max":
		return fmt.Errorf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
