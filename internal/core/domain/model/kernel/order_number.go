package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"

	"github.com/google/uuid"
)

// orderNumberPattern matches the ORD-YYYYMMDD-XXXXXXXX business identifier:
// a date stamp followed by eight uppercase hex characters.
var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

// ErrOrderNumberIsNotConstructed indicates use of a zero-value OrderNumber
// that bypassed the constructors.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via GenerateOrderNumber or NewOrderNumber")

// OrderNumber is the human-facing business identifier of an order, distinct
// from its UUID primary key. Format: ORD-YYYYMMDD-XXXXXXXX.
type OrderNumber struct {
	value string
	guard guard.ConstructorGuard
}

// GenerateOrderNumber mints a fresh order number stamped with the given
// creation time (UTC date part) and a random eight-character suffix.
func GenerateOrderNumber(createdAt time.Time) OrderNumber {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	value := fmt.Sprintf("ORD-%s-%s", createdAt.UTC().Format("20060102"), suffix)

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}
}

// NewOrderNumber validates and wraps an existing order number, typically read
// back from persistence or an API request.
func NewOrderNumber(value string) (OrderNumber, error) {
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if !orderNumberPattern.MatchString(value) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q does not match ORD-YYYYMMDD-XXXXXXXX", value))
	}

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the OrderNumber was created through a constructor.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}

// Value returns the identifier string.
func (n OrderNumber) Value() string {
	return n.value
}

// String implements fmt.Stringer.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual reports whether both order numbers carry the same value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}
