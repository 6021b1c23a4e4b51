package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// ErrEmailIsNotConstructed indicates use of a zero-value Email that bypassed
// NewEmail.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError(
	"email must be created via NewEmail")

// Email is a normalized customer email address: trimmed, lowercased, and
// shape-checked. It identifies the customer on an order; there is no separate
// customer aggregate in this context.
type Email struct {
	value string
	guard guard.ConstructorGuard
}

// NewEmail normalizes and validates an email address.
func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not a valid address", value))
	}

	return Email{
		value: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Email was created through its constructor.
func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

// Value returns the normalized address.
func (e Email) Value() string {
	return e.value
}

// String implements fmt.Stringer.
func (e Email) String() string {
	return e.value
}

// IsEqual reports whether both emails carry the same normalized address.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}
