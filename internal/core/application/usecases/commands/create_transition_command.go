package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrCreateTransitionCommandIsNotConstructed = errors.New(
	"CreateTransitionCommand must be created via NewCreateTransitionCommand constructor",
)

// CreateTransitionCommand represents a request to wire a new edge into the
// workflow graph. Both endpoint statuses must already exist in the catalog.
type CreateTransitionCommand struct { //nolint:recvcheck //using for validation
	fromCode     string
	toCode       string
	displayOrder int
	description  string
	rules        status.Rules

	guard guard.ConstructorGuard
}

// NewCreateTransitionCommand creates a command to wire a workflow edge.
func NewCreateTransitionCommand(
	fromCode string, toCode string, displayOrder int, description string, rules status.Rules,
) (CreateTransitionCommand, error) {
	command := CreateTransitionCommand{
		displayOrder: displayOrder,
		description:  description,
		rules:        rules,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setFromCode(fromCode),
		command.setToCode(toCode),
	); err != nil {
		return CreateTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTransitionCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransitionCommandIsNotConstructed)
}

// FromCode returns the normalized source status code.
func (c CreateTransitionCommand) FromCode() string {
	return c.fromCode
}

// ToCode returns the normalized target status code.
func (c CreateTransitionCommand) ToCode() string {
	return c.toCode
}

// DisplayOrder returns the ordering hint for edge listings.
func (c CreateTransitionCommand) DisplayOrder() int {
	return c.displayOrder
}

// Description returns the free-form edge description.
func (c CreateTransitionCommand) Description() string {
	return c.description
}

// Rules returns the guard requirements of the new edge.
func (c CreateTransitionCommand) Rules() status.Rules {
	return c.rules
}

func (c *CreateTransitionCommand) setFromCode(fromCode string) error {
	normalized := strings.ToUpper(strings.TrimSpace(fromCode))
	if normalized == "" {
		return ErrSourceStatusIsRequired
	}

	c.fromCode = normalized
	return nil
}

func (c *CreateTransitionCommand) setToCode(toCode string) error {
	normalized := strings.ToUpper(strings.TrimSpace(toCode))
	if normalized == "" {
		return ErrTargetStatusIsRequired
	}
	if normalized == c.fromCode {
		return ErrStatusCodesMustDiffer
	}

	c.toCode = normalized
	return nil
}
