package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"
	"bankdesk/internal/pkg/format"

	"github.com/shopspring/decimal"
)

// CustomerService handles customer self-service reads: dashboard,
// profile, accounts, transaction history and statements.
type CustomerService struct {
	customerRepo    repositories.CustomerRepository
	accountRepo     repositories.AccountRepository
	loanRepo        repositories.LoanRepository
	cardRepo        repositories.CardRepository
	transactionRepo repositories.TransactionRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	accountRepo repositories.AccountRepository,
	loanRepo repositories.LoanRepository,
	cardRepo repositories.CardRepository,
	transactionRepo repositories.TransactionRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		accountRepo:     accountRepo,
		loanRepo:        loanRepo,
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
	}
}

// Profile returns basic customer details
func (s *CustomerService) Profile(ctx context.Context, customerID uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, customerID)
}

// Accounts returns all accounts owned by the customer, oldest first
func (s *CustomerService) Accounts(ctx context.Context, customerID uint) ([]*models.Account, error) {
	return s.accountRepo.ListByCustomer(ctx, customerID)
}

// Dashboard summarizes a customer's holdings
type Dashboard struct {
	TotalAccounts      int                   `json:"total_accounts"`
	TotalBalance       decimal.Decimal       `json:"total_balance"`
	OpenLoans          int                   `json:"open_loans"`
	CardsCount         int                   `json:"cards_count"`
	RecentTransactions []*models.Transaction `json:"recent_transactions"`
}

// GetDashboard aggregates accounts, loans, cards and the five most
// recent transactions across all of the customer's accounts.
func (s *CustomerService) GetDashboard(ctx context.Context, customerID uint) (*Dashboard, error) {
	accounts, err := s.accountRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	totalBalance := decimal.Zero
	for _, account := range accounts {
		totalBalance = totalBalance.Add(account.Balance)
	}

	loans, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	openLoans := 0
	for _, loan := range loans {
		if loan.Status == models.LoanStatusPending || loan.Status == models.LoanStatusApproved {
			openLoans++
		}
	}

	cards, err := s.cardRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactionRepo.ListRecentByCustomer(ctx, customerID, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalAccounts:      len(accounts),
		TotalBalance:       totalBalance,
		OpenLoans:          openLoans,
		CardsCount:         len(cards),
		RecentTransactions: recent,
	}, nil
}

// TransactionHistory returns the newest ledger rows for an account, up
// to limit, optionally bounded by a from date. The account must belong
// to the requesting customer.
func (s *CustomerService) TransactionHistory(ctx context.Context, customerID, accountID uint, limit int, from *time.Time) ([]*models.Transaction, error) {
	if limit < 1 {
		limit = 50
	}
	if err := s.VerifyAccountOwner(ctx, customerID, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListByAccount(ctx, accountID, limit, from)
}

// Statement returns ledger rows oldest first within the optional range
func (s *CustomerService) Statement(ctx context.Context, customerID, accountID uint, start, end *time.Time) ([]*models.Transaction, error) {
	if err := s.VerifyAccountOwner(ctx, customerID, accountID); err != nil {
		return nil, err
	}
	return s.transactionRepo.Statement(ctx, accountID, start, end)
}

// VerifyAccountOwner checks the account exists and belongs to the
// customer. Used before any customer-initiated operation on an account.
func (s *CustomerService) VerifyAccountOwner(ctx context.Context, customerID, accountID uint) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.CustomerID != customerID {
		return domain.ErrForbidden
	}
	return nil
}

// WriteStatementCSV streams statement rows as CSV
func (s *CustomerService) WriteStatementCSV(w io.Writer, rows []*models.Transaction) error {
	writer := csv.NewWriter(w)

	header := []string{"Tx ID", "Date", "Type", "Amount", "Balance After", "Related Account", "Description"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		related := ""
		if row.RelatedAccount != nil {
			related = strconv.FormatUint(uint64(*row.RelatedAccount), 10)
		}
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			format.DateTime(row.CreatedAt),
			row.TxType,
			row.Amount.StringFixed(2),
			row.BalanceAfter.StringFixed(2),
			related,
			row.Description,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
