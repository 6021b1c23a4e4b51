package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// respondError maps a domain error to its HTTP status and writes the uniform
// error body.
func respondError(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCodeFor(err error) int {
	var (
		notFound      *errs.ObjectNotFoundError
		alreadyExists *errs.ObjectAlreadyExistsError
		conflict      *errs.OptimisticConflictError
		illegal       *errs.IllegalTransitionError
		payment       *errs.PaymentRequiredError
		reason        *errs.ReasonRequiredError
		approval      *errs.ApprovalRequiredError
		currency      *errs.CurrencyMismatchError
		required      *errs.ValueIsRequiredError
		invalid       *errs.ValueIsInvalidError
		outOfRange    *errs.ValueIsOutOfRangeError
		transient     *errs.TransientStoreFailureError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &alreadyExists),
		errors.As(err, &conflict),
		errors.As(err, &illegal),
		errors.As(err, &currency):
		return http.StatusConflict
	case errors.As(err, &payment):
		return http.StatusPaymentRequired
	case errors.As(err, &approval):
		return http.StatusForbidden
	case errors.As(err, &reason),
		errors.As(err, &required),
		errors.As(err, &invalid),
		errors.As(err, &outOfRange):
		return http.StatusBadRequest
	case errors.As(err, &transient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
