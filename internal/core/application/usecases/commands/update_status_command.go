package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents a request to redefine a catalog status.
// The code is the immutable identity; everything else, including the active
// flag, is replaced with the command's values.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	code         string
	name         string
	description  string
	displayOrder int
	flags        status.Flags
	isActive     bool

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to redefine a workflow status.
func NewUpdateStatusCommand(
	code string, name string, description string, displayOrder int, flags status.Flags, isActive bool,
) (UpdateStatusCommand, error) {
	command := UpdateStatusCommand{
		description:  description,
		displayOrder: displayOrder,
		flags:        flags,
		isActive:     isActive,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCode(code),
		command.setName(name),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// Code returns the normalized status code.
func (c UpdateStatusCommand) Code() string {
	return c.code
}

// Name returns the new human-readable status name.
func (c UpdateStatusCommand) Name() string {
	return c.name
}

// Description returns the new status description.
func (c UpdateStatusCommand) Description() string {
	return c.description
}

// DisplayOrder returns the new ordering hint.
func (c UpdateStatusCommand) DisplayOrder() int {
	return c.displayOrder
}

// Flags returns the new behavioral switches.
func (c UpdateStatusCommand) Flags() status.Flags {
	return c.flags
}

// IsActive reports whether the status should accept new orders.
func (c UpdateStatusCommand) IsActive() bool {
	return c.isActive
}

func (c *UpdateStatusCommand) setCode(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return ErrStatusCodeIsRequired
	}

	c.code = normalized
	return nil
}

func (c *UpdateStatusCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrStatusNameIsRequired
	}

	c.name = name
	return nil
}
