package order

import (
	"fmt"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// CustomerClass segments customers for pricing. The class decides the
// percentage discount applied to an order; the concrete percentages live in
// runtime settings, with the values below as fallback defaults.
type CustomerClass string

const (
	CustomerClassRetail    CustomerClass = "RETAIL"
	CustomerClassWholesale CustomerClass = "WHOLESALE"
	CustomerClassVIP       CustomerClass = "VIP"
	CustomerClassCorporate CustomerClass = "CORPORATE"
)

// CustomerClassFromString normalizes and validates a class name.
func CustomerClassFromString(value string) (CustomerClass, error) {
	class := CustomerClass(strings.ToUpper(strings.TrimSpace(value)))
	if err := class.Validate(); err != nil {
		return "", err
	}
	return class, nil
}

// Validate rejects classes outside the known segmentation.
func (c CustomerClass) Validate() error {
	switch c {
	case CustomerClassRetail, CustomerClassWholesale, CustomerClassVIP, CustomerClassCorporate:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("customerClass",
			fmt.Errorf("unknown class %q", string(c)))
	}
}

// String implements fmt.Stringer.
func (c CustomerClass) String() string {
	return string(c)
}

// DefaultDiscountPercent is the fallback discount used when runtime settings
// carry no override for the class.
func (c CustomerClass) DefaultDiscountPercent() float64 {
	switch c {
	case CustomerClassWholesale:
		return 10.0
	case CustomerClassVIP:
		return 15.0
	case CustomerClassCorporate:
		return 20.0
	default:
		return 0
	}
}
