package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Ledger / transfer errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAmountInvalid     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrSameAccount       = errors.New("source and destination accounts must be different")
	// ErrBusy is returned on lock-wait timeout; the caller may retry.
	ErrBusy = errors.New("account busy, try again")
)

// Customer / employee errors
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBranchNotFound   = errors.New("branch not found")
)

// Loan errors
var (
	ErrLoanNotFound   = errors.New("loan not found")
	ErrLoanNotPending = errors.New("loan is not pending")
)

// Card errors
var (
	ErrCardNotFound = errors.New("card not found")
	// ErrCardLimitConflict covers the credit_limit/withdrawal_limit
	// exclusivity rule: exactly one of the two must be set, matching
	// the card type.
	ErrCardLimitConflict = errors.New("card limit does not match card type")
	ErrCardNotActive     = errors.New("card is not active")
)
