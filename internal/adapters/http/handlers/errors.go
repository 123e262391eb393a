package handlers

import (
	"errors"

	"bankdesk/internal/core/domain"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses. Unknown errors
// become a generic 500 so internals never leak to clients.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAmountInvalid),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrCardLimitConflict):
		return response.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())

	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())

	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, err.Error())

	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrLoanNotPending),
		errors.Is(err, domain.ErrCardNotActive):
		return response.UnprocessableEntity(c, err.Error())

	case errors.Is(err, domain.ErrBusy):
		return response.ServiceUnavailable(c, "Accounts busy, please retry")

	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
