package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed number of decimal places every Money value carries.
// All amounts are rounded half-up to this scale at construction time, so two
// Money values in the same currency always compare digit for digit.
const MoneyScale = 2

// DefaultCurrency is used when an order is created without an explicit
// currency.
const DefaultCurrency = "USD"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrMoneyIsNotConstructed indicates use of a zero-value Money that bypassed
// the constructors.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromString, or NewZeroMoney")

// Money is an immutable monetary amount in a single currency.
//
// Invariants, enforced at construction and after every operation:
//   - the amount is never negative
//   - the scale is exactly MoneyScale, rounded half-up
//   - arithmetic only combines values of the same currency
//
// Multiplication rounds half-up back to MoneyScale, which makes pricing
// deterministic: repricing the same order always yields the same totals.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("49.99", "USD")
//	total, err := price.MultiplyQuantity(qty)
//	discount, err := total.Percent(15)
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount and an ISO 4217
// currency code. The amount must not be negative; it is rounded half-up to
// MoneyScale.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromString parses the decimal representation of an amount, such as
// "100.00" or "9.5", into a Money value.
func NewMoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// NewZeroMoney creates a zero amount in the given currency. Useful as the
// identity element when summing item totals or captured payments.
func NewZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate checks that the Money was created through a constructor. The zero
// value fails.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount at MoneyScale.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract returns the difference of two Money values of the same currency.
// A result below zero fails: Money never represents a negative amount.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("subtracting %s from %s yields a negative amount", other, m))
	}

	return NewMoney(result, m.currency)
}

// Multiply scales the amount by a non-negative decimal factor, rounding the
// product half-up to MoneyScale.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor",
			fmt.Errorf("factor %s is negative", factor))
	}
	return NewMoney(m.amount.Mul(factor), m.currency)
}

// MultiplyQuantity scales the amount by an item quantity.
func (m Money) MultiplyQuantity(q Quantity) (Money, error) {
	if err := q.Validate(); err != nil {
		return Money{}, err
	}
	return m.Multiply(decimal.NewFromInt(int64(q.Value())))
}

// Percent returns the given percentage of the amount, rounded half-up to
// MoneyScale. Percent(15) of 100.00 is 15.00.
func (m Money) Percent(percent float64) (Money, error) {
	if percent < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("percent",
			fmt.Errorf("percent %v is negative", percent))
	}
	factor := decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100))
	return m.Multiply(factor)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values. Amounts in different currencies are
// never equal.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return m.currency == other.currency && m.amount.Equal(other.amount), nil
}

// GreaterThanOrEqual reports whether m is at least other. Both values must be
// of the same currency.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// LessThan reports whether m is strictly below other. Both values must be of
// the same currency.
func (m Money) LessThan(other Money) (bool, error) {
	greaterOrEqual, err := m.GreaterThanOrEqual(other)
	if err != nil {
		return false, err
	}
	return !greaterOrEqual, nil
}

// String renders the amount followed by its currency, e.g. "123.45 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(MoneyScale), m.currency)
}

func (m Money) checkSameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewCurrencyMismatchError(m.currency, other.currency)
	}
	return nil
}

// setAmount applies the scale and sign rules.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, enabling self-encapsulated validation during construction.
func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("amount %s is negative", amount))
	}

	m.amount = amount.Round(MoneyScale)
	return nil
}

// setCurrency validates the ISO 4217 code shape.
func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if !currencyPattern.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter ISO 4217 code", currency))
	}

	m.currency = currency
	return nil
}
