package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// TransitionRequest carries an order status change with the catalog data the
// caller already resolved for it.
type TransitionRequest struct {
	// Target is the status the order should move to.
	Target *status.Status

	// Edge is the configured transition between the order's current status and
	// Target. nil means the catalog holds no such pair.
	Edge *status.Transition

	// Reason explains the change. Mandatory when the edge requires one.
	Reason string

	ChangedBy   string
	ChangedAt   time.Time
	IsAutomatic bool

	// Paid is the sum of successful payments for the order. It must be set
	// when the edge requires payment and may stay nil otherwise.
	Paid *kernel.Money
}

// TransitionExecutor is a domain service that decides whether a requested
// status change may happen and applies it to the order.
//
// The workflow is data: which moves exist, and what each one demands, lives in
// the transition catalog. The executor enforces that data and the code-level
// safety net that holds regardless of catalog contents (no moves out of a
// final status, none onto an inactive one, the latter two via the aggregate).
//
// Rule checks, in order:
//   - a configured, allowed edge must exist for the pair
//   - the source must not be final and the target must be active
//   - an edge requiring payment demands payments covering the final amount
//   - an edge requiring a reason demands a non-blank one
//
// Approval requirements are not checked here: the boundary that faces the
// caller decides what counts as approved before the request reaches the core.
//
// Example usage:
//
//	executor := NewTransitionExecutor()
//	err := executor.Execute(o, TransitionRequest{
//	    Target:    shipped,
//	    Edge:      edge,
//	    ChangedBy: "operator",
//	    ChangedAt: time.Now().UTC(),
//	})
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // The workflow forbids this move
//	    return
//	}
type TransitionExecutor struct{}

// NewTransitionExecutor creates a new TransitionExecutor instance.
func NewTransitionExecutor() TransitionExecutor {
	return TransitionExecutor{}
}

// Execute validates the request against the resolved catalog data and applies
// the change. On success the order carries the target status and a new history
// entry; on any failure the order is left untouched.
func (e TransitionExecutor) Execute(o *order.Order, request TransitionRequest) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if request.Target == nil {
		return errs.NewValueIsRequiredError("target")
	}
	if err := request.Target.Validate(); err != nil {
		return err
	}

	fromCode := o.Status().Code()
	toCode := request.Target.Code()

	if request.Edge == nil {
		return errs.NewIllegalTransitionErrorWithCause(fromCode, toCode,
			errors.New("no transition is configured for this pair"))
	}
	if !request.Edge.Connects(fromCode, toCode) {
		return errs.NewIllegalTransitionErrorWithCause(fromCode, toCode,
			errors.New("transition connects a different status pair"))
	}
	if !request.Edge.IsAllowed() {
		return errs.NewIllegalTransitionErrorWithCause(fromCode, toCode,
			errors.New("transition is disabled"))
	}

	// The safety net outranks the edge's own requirements: a final source
	// refuses the move before any payment or reason demand is evaluated.
	if err := o.Status().CanTransitionTo(request.Target); err != nil {
		return err
	}

	if request.Edge.RequiresPayment() {
		if request.Paid == nil {
			return errs.NewValueIsRequiredError("paid")
		}
		fullyPaid, err := o.IsFullyPaid(*request.Paid)
		if err != nil {
			return err
		}
		if !fullyPaid {
			return errs.NewPaymentRequiredError(o.ID(), o.FinalAmount().String(), request.Paid.String())
		}
	}

	if request.Edge.RequiresReason() && strings.TrimSpace(request.Reason) == "" {
		return errs.NewReasonRequiredError(fromCode, toCode)
	}

	return o.ChangeStatus(request.Target, request.ChangedBy, request.ChangedAt, request.Reason, request.IsAutomatic)
}
