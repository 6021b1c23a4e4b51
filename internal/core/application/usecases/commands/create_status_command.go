package commands

import (
	"errors"
	"strings"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrCreateStatusCommandIsNotConstructed = errors.New(
		"CreateStatusCommand must be created via NewCreateStatusCommand constructor",
	)
	ErrStatusCodeIsRequired = errors.New("status code is required")
	ErrStatusNameIsRequired = errors.New("status name is required")
)

// CreateStatusCommand represents a request to add a new status to the
// workflow catalog. New statuses are born active and unreachable; edges
// wired afterwards make them part of the live workflow.
type CreateStatusCommand struct { //nolint:recvcheck //using for validation
	code         string
	name         string
	description  string
	displayOrder int
	flags        status.Flags

	guard guard.ConstructorGuard
}

// NewCreateStatusCommand creates a command to register a workflow status.
// The code is normalized to upper case; full code shape validation happens
// in the domain constructor.
func NewCreateStatusCommand(
	code string, name string, description string, displayOrder int, flags status.Flags,
) (CreateStatusCommand, error) {
	command := CreateStatusCommand{
		description:  description,
		displayOrder: displayOrder,
		flags:        flags,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCode(code),
		command.setName(name),
	); err != nil {
		return CreateStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateStatusCommand) Validate() error {
	return c.guard.Validate(ErrCreateStatusCommandIsNotConstructed)
}

// Code returns the normalized status code.
func (c CreateStatusCommand) Code() string {
	return c.code
}

// Name returns the human-readable status name.
func (c CreateStatusCommand) Name() string {
	return c.name
}

// Description returns the free-form status description.
func (c CreateStatusCommand) Description() string {
	return c.description
}

// DisplayOrder returns the ordering hint for listings.
func (c CreateStatusCommand) DisplayOrder() int {
	return c.displayOrder
}

// Flags returns the behavioral switches of the new status.
func (c CreateStatusCommand) Flags() status.Flags {
	return c.flags
}

func (c *CreateStatusCommand) setCode(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return ErrStatusCodeIsRequired
	}

	c.code = normalized
	return nil
}

func (c *CreateStatusCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrStatusNameIsRequired
	}

	c.name = name
	return nil
}
