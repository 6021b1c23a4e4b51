package status

import (
	"errors"
	"fmt"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// ErrTransitionIsNotConstructed is returned when a Transition instance was not
// created through NewTransition or RestoreTransition.
var ErrTransitionIsNotConstructed = errors.New(
	"Transition must be created via NewTransition or RestoreTransition constructor")

// Rules carries the guard requirements of a transition edge. Each requirement
// is checked by the transition executor before the move is applied.
type Rules struct {
	RequiresApproval       bool
	RequiresPayment        bool
	RequiresInventoryCheck bool
	RequiresReason         bool
}

// Transition is a directed edge of the runtime workflow graph: permission to
// move an order from one status to another, plus the guards that gate the
// move. The pair (fromCode, toCode) is unique in the table.
type Transition struct {
	fromCode     string
	toCode       string
	isAllowed    bool
	rules        Rules
	displayOrder int
	description  string

	isConstructed bool
}

// NewTransition creates an allowed workflow edge between two status codes.
//
// Example:
//
//	edge, err := status.NewTransition("PROCESSING", "CONFIRMED", 1, "Confirm after payment",
//	    status.Rules{RequiresPayment: true})
func NewTransition(
	fromCode string, toCode string, displayOrder int, description string, rules Rules,
) (*Transition, error) {
	t := &Transition{
		isAllowed:     true,
		rules:         rules,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setFromCode(fromCode),
		t.setToCode(toCode),
		t.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTransition reconstructs an edge from persistence, including a
// possibly disabled isAllowed flag.
func RestoreTransition(
	fromCode string, toCode string, displayOrder int, description string, rules Rules, isAllowed bool,
) (*Transition, error) {
	t, err := NewTransition(fromCode, toCode, displayOrder, description, rules)
	if err != nil {
		return nil, err
	}

	t.isAllowed = isAllowed
	return t, nil
}

// Validate ensures the Transition was created through a constructor.
func (t *Transition) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransitionIsNotConstructed
	}
	return nil
}

// FromCode returns the source status code.
func (t *Transition) FromCode() string {
	return t.fromCode
}

// ToCode returns the target status code.
func (t *Transition) ToCode() string {
	return t.toCode
}

// IsAllowed reports whether the edge currently permits the move. Disabled
// edges stay in the table but behave as if absent.
func (t *Transition) IsAllowed() bool {
	return t.isAllowed
}

// Rules returns the guard requirements of the edge.
func (t *Transition) Rules() Rules {
	return t.rules
}

// RequiresApproval reports whether the move must be approved at the boundary.
func (t *Transition) RequiresApproval() bool {
	return t.rules.RequiresApproval
}

// RequiresPayment reports whether the order must be fully paid before moving.
func (t *Transition) RequiresPayment() bool {
	return t.rules.RequiresPayment
}

// RequiresInventoryCheck reports whether inventory must be reserved before
// moving.
func (t *Transition) RequiresInventoryCheck() bool {
	return t.rules.RequiresInventoryCheck
}

// RequiresReason reports whether the move demands a non-blank explanation.
func (t *Transition) RequiresReason() bool {
	return t.rules.RequiresReason
}

// DisplayOrder returns the ordering hint for listings of outbound edges.
func (t *Transition) DisplayOrder() int {
	return t.displayOrder
}

// Description returns the free-form explanation of the edge.
func (t *Transition) Description() string {
	return t.description
}

// Connects reports whether the edge links the given pair of codes.
func (t *Transition) Connects(fromCode string, toCode string) bool {
	return t.fromCode == fromCode && t.toCode == toCode
}

func (t *Transition) setFromCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("fromCode")
	}
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("fromCode",
			fmt.Errorf("%q is not upper snake case", code))
	}
	t.fromCode = code
	return nil
}

func (t *Transition) setToCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("toCode")
	}
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("toCode",
			fmt.Errorf("%q is not upper snake case", code))
	}
	t.toCode = code
	return nil
}

func (t *Transition) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsInvalidErrorWithCause("displayOrder",
			fmt.Errorf("%d is negative", displayOrder))
	}
	t.displayOrder = displayOrder
	return nil
}
