package kernel

import (
	"strconv"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

// ErrQuantityIsNotConstructed indicates use of a zero-value Quantity that
// bypassed NewQuantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity")

// Quantity is an immutable non-negative item count. Upper bounds (maximum
// quantity per item, maximum items per order) are business settings enforced
// by the use cases, not by the value object.
type Quantity struct { //nolint:recvcheck //using for validation
	value int
	guard guard.ConstructorGuard
}

// NewQuantity creates a Quantity. Negative values are rejected; zero is a
// valid quantity (the result of subtracting a count down to nothing).
func NewQuantity(value int) (Quantity, error) {
	q := Quantity{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setValue(value); err != nil {
		return Quantity{}, err
	}

	return q, nil
}

// Validate checks that the Quantity was created through its constructor.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

// Value returns the count.
func (q Quantity) Value() int {
	return q.value
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.Validate(); err != nil {
		return Quantity{}, err
	}
	if err := other.Validate(); err != nil {
		return Quantity{}, err
	}
	return NewQuantity(q.value + other.value)
}

// Subtract returns the difference of two quantities. A result below zero
// fails.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	if err := q.Validate(); err != nil {
		return Quantity{}, err
	}
	if err := other.Validate(); err != nil {
		return Quantity{}, err
	}
	return NewQuantity(q.value - other.value)
}

// IsPositive reports whether the count is above zero.
func (q Quantity) IsPositive() bool {
	return q.value > 0
}

// IsZero reports whether the count is exactly zero.
func (q Quantity) IsZero() bool {
	return q.value == 0
}

// String returns the decimal representation of the count.
func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}

// setValue rejects negative counts.
// Note: pointer receiver for self-encapsulated construction validation.
func (q *Quantity) setValue(value int) error {
	if value < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", value, 0, "unbounded")
	}

	q.value = value
	return nil
}
