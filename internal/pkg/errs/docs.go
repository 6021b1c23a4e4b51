// Package errs provides standardized error types for the order processing
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers two groups of error scenarios:
//   - Construction and lookup failures: ValueIsRequiredError,
//     ValueIsInvalidError, ValueIsOutOfRangeError, ObjectNotFoundError,
//     ObjectAlreadyExistsError
//   - Workflow and store failures: IllegalTransitionError,
//     PaymentRequiredError, ReasonRequiredError, ApprovalRequiredError,
//     OptimisticConflictError, TransientStoreFailureError,
//     CurrencyMismatchError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Callers branch on sentinels, not on concrete types: a handler that needs to
// know whether a store failure is worth retrying checks
// errors.Is(err, errs.ErrTransientStoreFailure) and nothing else.
package errs
