package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrAdvanceOrdersCommandIsNotConstructed = errors.New(
		"AdvanceOrdersCommand must be created via NewAdvanceOrdersCommand constructor",
	)
	ErrSourceStatusIsRequired = errors.New("source status code is required")
	ErrStatusCodesMustDiffer  = errors.New("source and target status codes must differ")
)

// AdvanceOrdersCommand represents a request to sweep every order out of one
// status into another in a single bulk statement. The scheduled advancement
// job issues it with the configured source and target codes.
type AdvanceOrdersCommand struct { //nolint:recvcheck //using for validation
	fromCode string
	toCode   string

	guard guard.ConstructorGuard
}

// NewAdvanceOrdersCommand creates a command to advance all orders between two
// status codes.
func NewAdvanceOrdersCommand(fromCode string, toCode string) (AdvanceOrdersCommand, error) {
	command := AdvanceOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setFromCode(fromCode),
		command.setToCode(toCode),
	); err != nil {
		return AdvanceOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrdersCommandIsNotConstructed)
}

// FromCode returns the source status code of the sweep.
func (c AdvanceOrdersCommand) FromCode() string {
	return c.fromCode
}

// ToCode returns the target status code of the sweep.
func (c AdvanceOrdersCommand) ToCode() string {
	return c.toCode
}

func (c *AdvanceOrdersCommand) setFromCode(fromCode string) error {
	normalized := strings.ToUpper(strings.TrimSpace(fromCode))
	if normalized == "" {
		return ErrSourceStatusIsRequired
	}

	c.fromCode = normalized
	return nil
}

func (c *AdvanceOrdersCommand) setToCode(toCode string) error {
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
