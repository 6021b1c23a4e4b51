// Package payment provides the payment records attached to orders. Payments
// are recorded as reported, never initiated: the system sums successful ones
// to answer "is this order fully paid" and stores the rest for bookkeeping.
package payment

import (
	"errors"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment constructor")

// Method is the payment instrument a payment was made with.
type Method string

const (
	MethodCreditCard     Method = "CREDIT_CARD"
	MethodDebitCard      Method = "DEBIT_CARD"
	MethodPayPal         Method = "PAYPAL"
	MethodBankTransfer   Method = "BANK_TRANSFER"
	MethodDigitalWallet  Method = "DIGITAL_WALLET"
	MethodCashOnDelivery Method = "CASH_ON_DELIVERY"
)

// Validate rejects methods outside the supported set.
func (m Method) Validate() error {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPayPal,
		MethodBankTransfer, MethodDigitalWallet, MethodCashOnDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidError("method")
	}
}

// IsOnline reports whether the method settles through a gateway. Offline
// methods (bank transfer, cash on delivery) are reconciled manually.
func (m Method) IsOnline() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPayPal, MethodDigitalWallet:
		return true
	default:
		return false
	}
}

func (m Method) String() string {
	return string(m)
}

// Status is the lifecycle state of a payment.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusAuthorized        Status = "AUTHORIZED"
	StatusCaptured          Status = "CAPTURED"
	StatusFailed            Status = "FAILED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
	StatusCancelled         Status = "CANCELLED"
)

// Validate rejects statuses outside the known lifecycle.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusAuthorized, StatusCaptured, StatusFailed,
		StatusRefunded, StatusPartiallyRefunded, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidError("status")
	}
}

// IsSuccessful reports whether the payment counts towards the paid total.
// A partially refunded payment still holds captured funds.
func (s Status) IsSuccessful() bool {
	return s == StatusCaptured || s == StatusPartiallyRefunded
}

// IsFinal reports whether the payment can still change state.
func (s Status) IsFinal() bool {
	switch s {
	case StatusCaptured, StatusFailed, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Payment is one recorded payment transaction against an order.
type Payment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	amount        kernel.Money
	method        Method
	status        Status
	transactionID string
	createdAt     time.Time

	isConstructed bool
}

// NewPayment records a payment against an order. The amount must be positive.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	status Status,
	transactionID string,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		transactionID: transactionID,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setMethod(method),
		p.setStatus(status),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a payment from persistent storage.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	status Status,
	transactionID string,
	createdAt time.Time,
) (*Payment, error) {
	return NewPayment(id, orderID, amount, method, status, transactionID, createdAt)
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two payments by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order this payment belongs to.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the payment amount.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Method returns the payment instrument.
func (p *Payment) Method() Method {
	return p.method
}

// Status returns the payment lifecycle state.
func (p *Payment) Status() Status {
	return p.status
}

// TransactionID returns the gateway transaction reference, possibly empty for
// offline methods.
func (p *Payment) TransactionID() string {
	return p.transactionID
}

// CreatedAt returns when the payment was recorded.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// CountsTowardsPaid reports whether this payment contributes to the order's
// paid total.
func (p *Payment) CountsTowardsPaid() bool {
	return p.status.IsSuccessful()
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			errors.New("payment amount must be positive"))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Payment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
