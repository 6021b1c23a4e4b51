package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every typed error in this
// package unwraps to exactly one of these.
var (
	ErrValueIsRequired       = errors.New("value is required")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrObjectNotFound        = errors.New("object not found")
	ErrObjectAlreadyExists   = errors.New("object already exists")
	ErrIllegalTransition     = errors.New("illegal transition")
	ErrPaymentRequired       = errors.New("payment required")
	ErrReasonRequired        = errors.New("reason required")
	ErrApprovalRequired      = errors.New("approval required")
	ErrOptimisticConflict    = errors.New("optimistic conflict")
	ErrTransientStoreFailure = errors.New("transient store failure")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
)

// sanitize flattens values into single-line strings so error messages stay
// log-friendly even when formatting arbitrary input.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ValueIsRequiredError indicates a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value that fails validation rules.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value any, minValue any, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value any, minValue any, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError indicates a uniqueness violation, such as a
// duplicate status code or an already registered transition pair.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func NewObjectAlreadyExistsErrorWithCause(paramName string, id any, cause error) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectAlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectAlreadyExists, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectAlreadyExists, e.ID)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

// IllegalTransitionError indicates a status change that the workflow does not
// permit: no configured edge, a disabled edge, or a final source status.
type IllegalTransitionError struct {
	FromCode string
	ToCode   string
	Cause    error
}

func NewIllegalTransitionError(fromCode string, toCode string) *IllegalTransitionError {
	return &IllegalTransitionError{FromCode: fromCode, ToCode: toCode}
}

func NewIllegalTransitionErrorWithCause(fromCode string, toCode string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{FromCode: fromCode, ToCode: toCode, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrIllegalTransition, e.FromCode, e.ToCode, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.FromCode, e.ToCode)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// PaymentRequiredError indicates a transition gated on full payment while the
// captured total still falls short of the order's final amount.
type PaymentRequiredError struct {
	OrderID  any
	Required string
	Paid     string
	Cause    error
}

func NewPaymentRequiredError(orderID any, required string, paid string) *PaymentRequiredError {
	return &PaymentRequiredError{OrderID: orderID, Required: required, Paid: paid}
}

func NewPaymentRequiredErrorWithCause(orderID any, required string, paid string, cause error) *PaymentRequiredError {
	return &PaymentRequiredError{OrderID: orderID, Required: required, Paid: paid, Cause: cause}
}

func (e *PaymentRequiredError) Error() string {
	msg := fmt.Sprintf("%s: order is: %s, required is: %s, paid is: %s",
		ErrPaymentRequired, sanitize(e.OrderID), e.Required, e.Paid)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *PaymentRequiredError) Unwrap() error {
	return ErrPaymentRequired
}

// ReasonRequiredError indicates a transition whose edge demands an explanation
// while the request carried none.
type ReasonRequiredError struct {
	FromCode string
	ToCode   string
	Cause    error
}

func NewReasonRequiredError(fromCode string, toCode string) *ReasonRequiredError {
	return &ReasonRequiredError{FromCode: fromCode, ToCode: toCode}
}

func NewReasonRequiredErrorWithCause(fromCode string, toCode string, cause error) *ReasonRequiredError {
	return &ReasonRequiredError{FromCode: fromCode, ToCode: toCode, Cause: cause}
}

func (e *ReasonRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: transition is: %s -> %s (cause: %s)", ErrReasonRequired, e.FromCode, e.ToCode, e.Cause)
	}
	return fmt.Sprintf("%s: transition is: %s -> %s", ErrReasonRequired, e.FromCode, e.ToCode)
}

func (e *ReasonRequiredError) Unwrap() error {
	return ErrReasonRequired
}

// ApprovalRequiredError indicates a transition on an approval-gated edge that
// was requested without approval.
type ApprovalRequiredError struct {
	FromCode string
	ToCode   string
	Cause    error
}

func NewApprovalRequiredError(fromCode string, toCode string) *ApprovalRequiredError {
	return &ApprovalRequiredError{FromCode: fromCode, ToCode: toCode}
}

func NewApprovalRequiredErrorWithCause(fromCode string, toCode string, cause error) *ApprovalRequiredError {
	return &ApprovalRequiredError{FromCode: fromCode, ToCode: toCode, Cause: cause}
}

func (e *ApprovalRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: transition is: %s -> %s (cause: %s)", ErrApprovalRequired, e.FromCode, e.ToCode, e.Cause)
	}
	return fmt.Sprintf("%s: transition is: %s -> %s", ErrApprovalRequired, e.FromCode, e.ToCode)
}

func (e *ApprovalRequiredError) Unwrap() error {
	return ErrApprovalRequired
}

// OptimisticConflictError indicates a versioned update that matched no row:
// the aggregate changed underneath the caller, who should reload and retry.
type OptimisticConflictError struct {
	ParamName string
	ID        any
	Version   int64
	Cause     error
}

func NewOptimisticConflictError(paramName string, id any, version int64) *OptimisticConflictError {
	return &OptimisticConflictError{ParamName: paramName, ID: id, Version: version}
}

func NewOptimisticConflictErrorWithCause(paramName string, id any, version int64, cause error) *OptimisticConflictError {
	return &OptimisticConflictError{ParamName: paramName, ID: id, Version: version, Cause: cause}
}

func (e *OptimisticConflictError) Error() string {
	msg := fmt.Sprintf("%s: param is: %s, ID is: %s, version is: %d",
		ErrOptimisticConflict, e.ParamName, sanitize(e.ID), e.Version)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *OptimisticConflictError) Unwrap() error {
	return ErrOptimisticConflict
}

// TransientStoreFailureError indicates an infrastructure-level store failure
// (lost connection, timeout, deadlock) that is worth retrying, as opposed to a
// business rule rejection which is not.
type TransientStoreFailureError struct {
	Op    string
	Cause error
}

func NewTransientStoreFailureError(op string) *TransientStoreFailureError {
	return &TransientStoreFailureError{Op: op}
}

func NewTransientStoreFailureErrorWithCause(op string, cause error) *TransientStoreFailureError {
	return &TransientStoreFailureError{Op: op, Cause: cause}
}

func (e *TransientStoreFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrTransientStoreFailure, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransientStoreFailure, e.Op)
}

func (e *TransientStoreFailureError) Unwrap() error {
	return ErrTransientStoreFailure
}

// CurrencyMismatchError indicates monetary arithmetic across different
// currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
	Cause error
}

func NewCurrencyMismatchError(left string, right string) *CurrencyMismatchError {
	return &CurrencyMismatchError{Left: left, Right: right}
}

func NewCurrencyMismatchErrorWithCause(left string, right string, cause error) *CurrencyMismatchError {
	return &CurrencyMismatchError{Left: left, Right: right, Cause: cause}
}

func (e *CurrencyMismatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s and %s (cause: %s)", ErrCurrencyMismatch, e.Left, e.Right, e.Cause)
	}
	return fmt.Sprintf("%s: %s and %s", ErrCurrencyMismatch, e.Left, e.Right)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}
