package commands

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrRecordPaymentCommandIsNotConstructed = errors.New(
		"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
	)
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// RecordPaymentCommand represents a request to record a payment against an
// order. Payments are append-only facts; only their sum in a successful state
// influences the workflow, through payment-gated transitions.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID     kernel.UUID
	orderID       kernel.UUID
	amount        decimal.Decimal
	method        payment.Method
	status        payment.Status
	transactionID string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment.
// Generates the payment ID. Method and status names are normalized before
// validation; transactionID may stay empty for offline methods.
func NewRecordPaymentCommand(
	orderID kernel.UUID, amount decimal.Decimal, method string, status string, transactionID string,
) (RecordPaymentCommand, error) {
	command := RecordPaymentCommand{
		paymentID:     kernel.NewUUID(),
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAmount(amount),
		command.setMethod(method),
		command.setStatus(status),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// PaymentID returns the generated payment identifier.
func (c RecordPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the order the payment belongs to.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the paid amount. The handler binds it to the order currency.
func (c RecordPaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

// Method returns the validated payment method.
func (c RecordPaymentCommand) Method() payment.Method {
	return c.method
}

// Status returns the validated payment status.
func (c RecordPaymentCommand) Status() payment.Status {
	return c.status
}

// TransactionID returns the gateway transaction reference, possibly empty.
func (c RecordPaymentCommand) TransactionID() string {
	return c.transactionID
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setMethod(method string) error {
	normalized := payment.Method(strings.ToUpper(strings.TrimSpace(method)))
	if err := normalized.Validate(); err != nil {
		return err
	}

	c.method = normalized
	return nil
}

func (c *RecordPaymentCommand) setStatus(status string) error {
	normalized := payment.Status(strings.ToUpper(strings.TrimSpace(status)))
	if err := normalized.Validate(); err != nil {
		return err
	}

	c.status = normalized
	return nil
}
