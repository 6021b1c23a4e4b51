package status

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// Entry-point codes the workflow cannot operate without. PENDING receives
// every newly created order; CANCELLED is the target of order cancellation.
// Both are seeded and must never be deactivated, while everything else in the
// catalog is free to change at runtime.
const (
	DefaultStatusCode      = "PENDING"
	CancellationStatusCode = "CANCELLED"
)

var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ErrStatusIsNotConstructed is returned when a Status instance was not created
// through NewStatus or RestoreStatus.
var ErrStatusIsNotConstructed = errors.New("Status must be created via NewStatus or RestoreStatus constructor")

// Flags carries the behavioral switches of a workflow status. Each switch
// either shapes what orders in this status may do (final, cancellable,
// modifiable) or announces side effects the surrounding systems react to
// (payment, inventory, shipping, notification).
type Flags struct {
	IsFinal                      bool
	IsCancellable                bool
	IsModifiable                 bool
	TriggersPayment              bool
	TriggersInventoryReservation bool
	TriggersShipping             bool
	SendsNotification            bool
}

// Status is a row of the runtime status catalog: one configurable state of the
// order workflow. The catalog, not code, defines which states exist; code only
// enforces the semantics of the flags.
//
// Invariants:
//   - code is upper snake case and never changes after creation
//   - displayOrder is non-negative
//   - a final status never allows cancellation or modification, whatever its
//     other flags claim
type Status struct {
	code         string
	name         string
	description  string
	displayOrder int
	flags        Flags
	isActive     bool

	isConstructed bool
}

// NewStatus creates an active catalog status.
//
// Parameters:
//   - code: upper snake case identifier, unique in the catalog
//   - name: human-readable label
//   - description: free-form explanation, may be empty
//   - displayOrder: non-negative ordering hint for listings
//   - flags: behavioral switches
//
// Example:
//
//	st, err := status.NewStatus("PREPARING", "Preparing", "Order is being prepared", 4,
//	    status.Flags{IsCancellable: false, TriggersShipping: true})
func NewStatus(code string, name string, description string, displayOrder int, flags Flags) (*Status, error) {
	s := &Status{
		description:   description,
		flags:         flags,
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setCode(code),
		s.setName(name),
		s.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStatus reconstructs a status from persistence, including its
// activation state.
func RestoreStatus(
	code string, name string, description string, displayOrder int, flags Flags, isActive bool,
) (*Status, error) {
	s, err := NewStatus(code, name, description, displayOrder, flags)
	if err != nil {
		return nil, err
	}

	s.isActive = isActive
	return s, nil
}

// Validate ensures the Status was created through a constructor.
func (s *Status) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStatusIsNotConstructed
	}
	return nil
}

// IsEqual compares two statuses by code.
func (s *Status) IsEqual(other *Status) bool {
	return other != nil && s.code == other.code
}

// Code returns the immutable catalog identifier.
func (s *Status) Code() string {
	return s.code
}

// Name returns the human-readable label.
func (s *Status) Name() string {
	return s.name
}

// Description returns the free-form explanation.
func (s *Status) Description() string {
	return s.description
}

// DisplayOrder returns the ordering hint for listings.
func (s *Status) DisplayOrder() int {
	return s.displayOrder
}

// Flags returns the behavioral switches.
func (s *Status) Flags() Flags {
	return s.flags
}

// IsFinal reports whether orders in this status have reached the end of their
// lifecycle.
func (s *Status) IsFinal() bool {
	return s.flags.IsFinal
}

// IsActive reports whether the status participates in the workflow. Inactive
// statuses stay in the catalog for history but reject new arrivals.
func (s *Status) IsActive() bool {
	return s.isActive
}

// AllowsCancellation reports whether an order in this status may be cancelled.
// Final statuses never allow it, regardless of the cancellable flag.
func (s *Status) AllowsCancellation() bool {
	return s.flags.IsCancellable && !s.flags.IsFinal
}

// AllowsModification reports whether an order in this status may have items
// added or removed. Final statuses never allow it.
func (s *Status) AllowsModification() bool {
	return s.flags.IsModifiable && !s.flags.IsFinal
}

// CanTransitionTo is the code-level safety net under the transition table: no
// outbound moves from a final status and no moves onto an inactive status,
// whatever edges the table may contain.
func (s *Status) CanTransitionTo(target *Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if s.flags.IsFinal {
		return errs.NewIllegalTransitionErrorWithCause(s.code, target.code,
			fmt.Errorf("source status %s is final", s.code))
	}
	if !target.isActive {
		return errs.NewIllegalTransitionErrorWithCause(s.code, target.code,
			fmt.Errorf("target status %s is inactive", target.code))
	}

	return nil
}

// IsEntryPoint reports whether the status is one of the codes the workflow
// cannot operate without.
func (s *Status) IsEntryPoint() bool {
	return s.code == DefaultStatusCode || s.code == CancellationStatusCode
}

// Update replaces the mutable attributes of the status. The code is fixed for
// life: history rows and orders reference it.
func (s *Status) Update(name string, description string, displayOrder int, flags Flags) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := errors.Join(
		s.setName(name),
		s.setDisplayOrder(displayOrder),
	); err != nil {
		return err
	}

	s.description = description
	s.flags = flags
	return nil
}

// Activate returns the status to the workflow.
func (s *Status) Activate() error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.isActive = true
	return nil
}

// Deactivate retires the status from the workflow. Entry-point statuses
// refuse: orders must always have somewhere to start and somewhere to cancel
// to.
func (s *Status) Deactivate() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsEntryPoint() {
		return errs.NewValueIsInvalidErrorWithCause("isActive",
			fmt.Errorf("entry-point status %s cannot be deactivated", s.code))
	}

	s.isActive = false
	return nil
}

func (s *Status) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("%q is not upper snake case", code))
	}
	s.code = code
	return nil
}

func (s *Status) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Status) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsInvalidErrorWithCause("displayOrder",
			fmt.Errorf("%d is negative", displayOrder))
	}
	s.displayOrder = displayOrder
	return nil
}
