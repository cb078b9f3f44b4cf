package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnauthorized is returned when a non-admin caller invokes an admin
	// procedure.
	ErrUnauthorized = errors.New("Unauthorized")

	errUnknownProcedure = errors.New("procedure not found")
	errWrongMethod      = errors.New("method not allowed for procedure")
)

// ValidationError is returned when a procedure input does not match its
// declared shape. No procedure body runs after it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalidf builds a ValidationError, for procedure bodies that reject input
// the declared shape cannot express.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func fromValidator(err error, field string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Invalidf("invalid input: %v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		msgs = append(msgs, describe(name, fe))
	}
	return Invalidf("%s", strings.Join(msgs, "; "))
}

func describe(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "email":
		return name + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
