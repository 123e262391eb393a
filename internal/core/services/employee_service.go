package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"
	"bankdesk/internal/pkg/password"

	"github.com/shopspring/decimal"
)

// EmployeeService handles the teller-facing operations: customer
// onboarding, account opening and customer lookups.
type EmployeeService struct {
	customerRepo repositories.CustomerRepository
	accountRepo  repositories.AccountRepository
	loanRepo     repositories.LoanRepository
	cardRepo     repositories.CardRepository
	employeeRepo repositories.EmployeeRepository
	branchRepo   repositories.BranchRepository
	transfers    *TransferService
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	customerRepo repositories.CustomerRepository,
	accountRepo repositories.AccountRepository,
	loanRepo repositories.LoanRepository,
	cardRepo repositories.CardRepository,
	employeeRepo repositories.EmployeeRepository,
	branchRepo repositories.BranchRepository,
	transfers *TransferService,
) *EmployeeService {
	return &EmployeeService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		loanRepo:     loanRepo,
		cardRepo:     cardRepo,
		employeeRepo: employeeRepo,
		branchRepo:   branchRepo,
		transfers:    transfers,
	}
}

// SearchCustomers matches name, email or mobile substrings
func (s *EmployeeService) SearchCustomers(ctx context.Context, query string) ([]*models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.customerRepo.Search(ctx, query)
}

// CustomerDetails bundles everything a teller sees on one screen
type CustomerDetails struct {
	Customer *models.CustomerResponse `json:"customer"`
	Accounts []*models.Account        `json:"accounts"`
	Loans    []*models.Loan           `json:"loans"`
	Cards    []*models.Card           `json:"cards"`
}

// GetCustomerDetails loads a customer with accounts, loans and cards
func (s *EmployeeService) GetCustomerDetails(ctx context.Context, customerID uint) (*CustomerDetails, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerDetails{
		Customer: customer.ToResponse(),
		Accounts: accounts,
		Loans:    loans,
		Cards:    cards,
	}, nil
}

// CreateCustomerInput carries a new customer registration
type CreateCustomerInput struct {
	FirstName string
	LastName  string
	DOB       time.Time
	Email     string
	Mobile    string
	Password  string
}

// CreateCustomer registers a customer with a hashed password. Email
// and mobile must be unique.
func (s *EmployeeService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Mobile = strings.TrimSpace(input.Mobile)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Mobile == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DOB:          input.DOB,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: hash,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// OpenAccountInput carries a new account request
type OpenAccountInput struct {
	CustomerID     uint
	BranchID       uint
	AccountType    string
	InitialDeposit decimal.Decimal
}

// OpenAccount creates a zero-balance account and, when an initial
// deposit is given, credits it through the ledger so the opening
// balance has a DEPOSIT row like every later mutation.
func (s *EmployeeService) OpenAccount(ctx context.Context, input OpenAccountInput) (*models.Account, error) {
	if input.InitialDeposit.IsNegative() {
		return nil, domain.ErrAmountInvalid
	}
	if input.AccountType == "" {
		input.AccountType = "Savings"
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, input.BranchID); err != nil {
		return nil, err
	}

	number, err := s.nextAccountNumber(ctx, input.BranchID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		CustomerID:    input.CustomerID,
		BranchID:      input.BranchID,
		AccountNumber: number,
		Balance:       decimal.Zero,
		AccountType:   input.AccountType,
		Currency:      "INR",
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if input.InitialDeposit.IsPositive() {
		if _, err := s.transfers.Deposit(ctx, account.ID, input.InitialDeposit, "Initial deposit"); err != nil {
			return nil, err
		}
		account.Balance = input.InitialDeposit
	}

	return account, nil
}

// BranchEmployees lists the staff of a branch
func (s *EmployeeService) BranchEmployees(ctx context.Context, branchID uint) ([]*models.Employee, error) {
	return s.employeeRepo.ListByBranch(ctx, branchID)
}

// Branches lists all branches
func (s *EmployeeService) Branches(ctx context.Context) ([]*models.Branch, error) {
	return s.branchRepo.List(ctx)
}

// nextAccountNumber builds an eight digit number from the branch and
// customer ids; on a collision (a customer's second account at the
// same branch) it falls back to a random suffix.
func (s *EmployeeService) nextAccountNumber(ctx context.Context, branchID, customerID uint) (string, error) {
	number := fmt.Sprintf("%03d%05d", branchID, customerID)
	exists, err := s.accountRepo.ExistsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if !exists {
		return number, nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		v, err := rand.Int(rand.Reader, big.NewInt(100000))
		if err != nil {
			return "", err
		}
		number = fmt.Sprintf("%03d%05d", branchID, v.Int64())
		exists, err := s.accountRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to allocate an account number")
}
