package friends

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateEmail checks the address format. It does not check that the user exists.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidEmail, email)
	}
	return nil
}
