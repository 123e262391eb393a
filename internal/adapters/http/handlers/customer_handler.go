package handlers

import (
	"time"

	"bankdesk/internal/adapters/http/middleware"
	"bankdesk/internal/core/services"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles customer self-service endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
	transferService *services.TransferService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService, transferService *services.TransferService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		transferService: transferService,
	}
}

// Dashboard returns the customer's summary view
func (h *CustomerHandler) Dashboard(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	data, err := h.customerService.GetDashboard(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Dashboard retrieved", data)
}

// Profile returns the customer's profile
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	customer, err := h.customerService.Profile(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Profile retrieved", customer.ToResponse())
}

// Accounts returns the customer's accounts
func (h *CustomerHandler) Accounts(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	accounts, err := h.customerService.Accounts(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Accounts retrieved", accounts)
}

// TransactionHistory returns recent ledger rows for one account.
// Query params: limit (default 50), from (YYYY-MM-DD).
func (h *CustomerHandler) TransactionHistory(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	accountID, err := c.ParamsInt("id")
	if err != nil || accountID < 1 {
		return response.BadRequest(c, "Invalid account id")
	}

	limit := c.QueryInt("limit", 50)
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
	}

	rows, err := h.customerService.TransactionHistory(c.Context(), customerID, uint(accountID), limit, from)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Transactions retrieved", rows)
}

// Statement returns ledger rows for a date range, oldest first.
// Query params: start, end (YYYY-MM-DD), format=csv for a download.
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	accountID, err := c.ParamsInt("id")
	if err != nil || accountID < 1 {
		return response.BadRequest(c, "Invalid account id")
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		return response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
	}

	rows, err := h.customerService.Statement(c.Context(), customerID, uint(accountID), start, end)
	if err != nil {
		return respondError(c, err)
	}

	if c.Query("format") == "csv" {
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.csv"`)
		if err := h.customerService.WriteStatementCSV(c.Response().BodyWriter(), rows); err != nil {
			return respondError(c, err)
		}
		return nil
	}

	return response.Success(c, "Statement retrieved", rows)
}

// TransferRequest represents a transfer request body
type TransferRequest struct {
	FromAccountID uint   `json:"from_account_id"`
	ToAccountID   uint   `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// Transfer moves money between two accounts. The source account must
// belong to the authenticated customer.
func (h *CustomerHandler) Transfer(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	if err := h.customerService.VerifyAccountOwner(c.Context(), customerID, req.FromAccountID); err != nil {
		return respondError(c, err)
	}

	result, err := h.transferService.Transfer(c.Context(), req.FromAccountID, req.ToAccountID, amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Transfer completed", result)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
