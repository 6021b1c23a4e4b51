package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrCancellationReasonIsRequired = errors.New("cancellation reason is required")
)

// CancelOrderCommand represents a request to cancel an order. Cancellation is
// flag-driven: any status marked cancellable allows it, no matter which edges
// the workflow graph configures. A reason is always mandatory.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	reason      string
	cancelledBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// A blank cancelledBy is recorded as the system actor.
func NewCancelOrderCommand(orderID kernel.UUID, reason string, cancelledBy string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
	command.setCancelledBy(cancelledBy)

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the stated cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// CancelledBy returns the actor recorded on the cancellation.
func (c CancelOrderCommand) CancelledBy() string {
	return c.cancelledBy
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrCancellationReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setCancelledBy(cancelledBy string) {
	if strings.TrimSpace(cancelledBy) == "" {
		cancelledBy = order.SystemActor
	}

	c.cancelledBy = cancelledBy
}
