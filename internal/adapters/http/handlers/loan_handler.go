package handlers

import (
	"bankdesk/internal/adapters/http/middleware"
	"bankdesk/internal/core/services"
	"bankdesk/internal/pkg/jwt"
	"bankdesk/internal/pkg/pagination"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan application and approval endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RequestLoanRequest represents a loan application body
type RequestLoanRequest struct {
	LinkedAccountID uint   `json:"linked_account_id"`
	LoanType        string `json:"loan_type"`
	Principal       string `json:"principal"`
	TenureMonths    int    `json:"tenure_months"`
}

// Request files a loan application for the authenticated customer
func (h *LoanHandler) Request(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	var req RequestLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return response.BadRequest(c, "Invalid principal amount")
	}

	loan, err := h.loanService.RequestLoan(c.Context(), services.RequestLoanInput{
		CustomerID:      customerID,
		LinkedAccountID: req.LinkedAccountID,
		LoanType:        req.LoanType,
		Principal:       principal,
		TenureMonths:    req.TenureMonths,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Loan application submitted", loan)
}

// MyLoans returns the authenticated customer's loans
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	loans, err := h.loanService.CustomerLoans(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Loans retrieved", loans)
}

// EMISchedule returns the repayment schedule of a loan. Customers may
// only view their own loans.
func (h *LoanHandler) EMISchedule(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil || loanID < 1 {
		return response.BadRequest(c, "Invalid loan id")
	}

	loan, err := h.loanService.Loan(c.Context(), uint(loanID))
	if err != nil {
		return respondError(c, err)
	}
	if middleware.UserType(c) == jwt.UserTypeCustomer && loan.CustomerID != middleware.UserID(c) {
		return response.Forbidden(c, "Not your loan")
	}

	schedule, err := h.loanService.EMISchedule(c.Context(), uint(loanID))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "EMI schedule retrieved", fiber.Map{
		"loan":     loan,
		"schedule": schedule,
	})
}

// Pending lists PENDING applications for the employee's branch
func (h *LoanHandler) Pending(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)

	loans, err := h.loanService.PendingLoans(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Pending loans retrieved", loans)
}

// BranchLoans lists the branch's loans with an optional status filter
// and pagination
func (h *LoanHandler) BranchLoans(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)
	params := pagination.GetParams(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	loans, total, err := h.loanService.BranchLoans(c.Context(), branchID, status, params.Offset, params.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Loans retrieved", pagination.NewResponse(loans, params, total))
}

// Approve approves a pending loan and disburses the principal
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil || loanID < 1 {
		return response.BadRequest(c, "Invalid loan id")
	}
	employeeID := middleware.UserID(c)

	loan, err := h.loanService.Approve(c.Context(), uint(loanID), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Loan approved and disbursed", loan)
}

// Reject rejects a pending loan
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil || loanID < 1 {
		return response.BadRequest(c, "Invalid loan id")
	}
	employeeID := middleware.UserID(c)

	loan, err := h.loanService.Reject(c.Context(), uint(loanID), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Loan rejected", loan)
}
