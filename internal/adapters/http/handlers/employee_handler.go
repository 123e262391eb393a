package handlers

import (
	"time"

	"bankdesk/internal/adapters/http/middleware"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/services"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// EmployeeHandler handles the teller-facing endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	reportService   *services.ReportService
	transferService *services.TransferService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	employeeService *services.EmployeeService,
	reportService *services.ReportService,
	transferService *services.TransferService,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		reportService:   reportService,
		transferService: transferService,
	}
}

// Dashboard returns the employee's landing page data
func (h *EmployeeHandler) Dashboard(c *fiber.Ctx) error {
	employeeID := middleware.UserID(c)

	data, err := h.reportService.GetEmployeeDashboard(c.Context(), employeeID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Dashboard retrieved", data)
}

// SearchCustomers matches customers by name, email or mobile.
// Query param: q.
func (h *EmployeeHandler) SearchCustomers(c *fiber.Ctx) error {
	query := c.Query("q")

	customers, err := h.employeeService.SearchCustomers(c.Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	results := make([]interface{}, 0, len(customers))
	for _, customer := range customers {
		results = append(results, customer.ToResponse())
	}
	return response.Success(c, "Customers retrieved", results)
}

// CustomerDetails returns a customer with accounts, loans and cards
func (h *EmployeeHandler) CustomerDetails(c *fiber.Ctx) error {
	customerID, err := c.ParamsInt("id")
	if err != nil || customerID < 1 {
		return response.BadRequest(c, "Invalid customer id")
	}

	details, err := h.employeeService.GetCustomerDetails(c.Context(), uint(customerID))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Customer details retrieved", details)
}

// CreateCustomerRequest represents a customer registration body
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Password  string `json:"password"`
}

// CreateCustomer registers a new customer
func (h *EmployeeHandler) CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return response.BadRequest(c, "Invalid dob, expected YYYY-MM-DD")
	}

	customer, err := h.employeeService.CreateCustomer(c.Context(), services.CreateCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       dob,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Customer created", customer.ToResponse())
}

// OpenAccountRequest represents an account opening body
type OpenAccountRequest struct {
	CustomerID     uint   `json:"customer_id"`
	AccountType    string `json:"account_type"`
	InitialDeposit string `json:"initial_deposit"`
}

// OpenAccount opens an account at the employee's branch
func (h *EmployeeHandler) OpenAccount(c *fiber.Ctx) error {
	var req OpenAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	deposit := decimal.Zero
	if req.InitialDeposit != "" {
		var err error
		deposit, err = decimal.NewFromString(req.InitialDeposit)
		if err != nil {
			return response.BadRequest(c, "Invalid initial deposit")
		}
	}

	account, err := h.employeeService.OpenAccount(c.Context(), services.OpenAccountInput{
		CustomerID:     req.CustomerID,
		BranchID:       middleware.BranchID(c),
		AccountType:    req.AccountType,
		InitialDeposit: deposit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Account opened", account)
}

// CashRequest represents a teller deposit or withdrawal body
type CashRequest struct {
	AccountID   uint   `json:"account_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Deposit credits cash into an account
func (h *EmployeeHandler) Deposit(c *fiber.Ctx) error {
	var req CashRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	row, err := h.transferService.Deposit(c.Context(), req.AccountID, amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Deposit completed", row)
}

// Withdraw debits cash from an account
func (h *EmployeeHandler) Withdraw(c *fiber.Ctx) error {
	var req CashRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	row, err := h.transferService.Withdraw(c.Context(), req.AccountID, amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Withdrawal completed", row)
}

// BranchReport returns the branch position rollup
func (h *EmployeeHandler) BranchReport(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)

	report, err := h.reportService.GetBranchReport(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Branch report retrieved", report)
}

// BranchTransactions returns ledger rows across the branch's accounts.
// Query params: account_id, tx_type.
func (h *EmployeeHandler) BranchTransactions(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)

	var filter repositories.TransactionFilter
	if id := c.QueryInt("account_id", 0); id > 0 {
		accountID := uint(id)
		filter.AccountID = &accountID
	}
	if t := c.Query("tx_type"); t != "" {
		filter.TxType = &t
	}

	rows, err := h.reportService.BranchTransactions(c.Context(), branchID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Transactions retrieved", rows)
}

// BranchEmployees lists the branch's staff
func (h *EmployeeHandler) BranchEmployees(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)

	employees, err := h.employeeService.BranchEmployees(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Employees retrieved", employees)
}

// Branches lists all branches
func (h *EmployeeHandler) Branches(c *fiber.Ctx) error {
	branches, err := h.employeeService.Branches(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Branches retrieved", branches)
}
