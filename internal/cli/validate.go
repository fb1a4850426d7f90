package cli

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldValidator adapts a validator/v10 tag into a huh field
// validator, reporting msg on failure.
func fieldValidator(tag, msg string) func(string) error {
	return func(value string) error {
		if err := validate.Var(strings.TrimSpace(value), tag); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}
