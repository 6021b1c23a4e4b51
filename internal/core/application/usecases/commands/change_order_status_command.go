package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrTargetStatusIsRequired = errors.New("target status code is required")
)

// ChangeOrderStatusCommand represents a request to move an order along the
// workflow graph. The move must follow a configured, allowed edge, and the
// edge's guard rules decide whether a reason, full payment or an approval is
// demanded.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, "CONFIRMED", "", "alice", true)
//	if err != nil {
//	    return err
//	}
//
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPaymentRequired):
//	    // the edge demands full payment first
//	case errors.Is(err, errs.ErrIllegalTransition):
//	    // no such edge, or the workflow forbids the move
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	targetStatusCode string
	reason           string
	changedBy        string
	isApproved       bool

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to a target
// status. A blank changedBy is recorded as the system actor. isApproved marks
// that a human approved the move, which approval-gated edges demand.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID, targetStatusCode string, reason string, changedBy string, isApproved bool,
) (ChangeOrderStatusCommand, error) {
	command := ChangeOrderStatusCommand{
		reason:     reason,
		isApproved: isApproved,
		guard:      guard.NewConstructorGuard(),
	}
	command.setChangedBy(changedBy)

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTargetStatusCode(targetStatusCode),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatusCode returns the normalized destination status code.
func (c ChangeOrderStatusCommand) TargetStatusCode() string {
	return c.targetStatusCode
}

// Reason returns the stated reason for the move, possibly empty.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

// ChangedBy returns the actor recorded on the history entry.
func (c ChangeOrderStatusCommand) ChangedBy() string {
	return c.changedBy
}

// IsApproved reports whether a human approved the move.
func (c ChangeOrderStatusCommand) IsApproved() bool {
	return c.isApproved
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatusCode(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return ErrTargetStatusIsRequired
	}

	c.targetStatusCode = normalized
	return nil
}

func (c *ChangeOrderStatusCommand) setChangedBy(changedBy string) {
	if strings.TrimSpace(changedBy) == "" {
		changedBy = order.SystemActor
	}

	c.changedBy = changedBy
}
