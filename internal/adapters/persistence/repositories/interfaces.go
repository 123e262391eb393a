package repositories

import (
	"context"
	"time"

	"bankdesk/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// CustomerRepository defines customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*models.Customer, error)
	// Search matches the query as a substring of first name, last name,
	// email or mobile, newest customers first.
	Search(ctx context.Context, query string) ([]*models.Customer, error)
	ListRecentByBranch(ctx context.Context, branchID uint, limit int) ([]*models.Customer, error)
}

// BranchRepository defines branch data access
type BranchRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Branch, error)
	List(ctx context.Context) ([]*models.Branch, error)
}

// AccountRepository defines account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetBalance(ctx context.Context, id uint) (decimal.Decimal, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Account, error)
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)
}

// EmployeeRepository defines employee data access
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	ListByBranch(ctx context.Context, branchID uint) ([]*models.Employee, error)
}

// CardRepository defines card data access
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	GetByID(ctx context.Context, id uint) (*models.Card, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Card, error)
	ListByBranch(ctx context.Context, branchID uint) ([]*models.Card, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// LoanRepository defines loan data access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error)
	ListPendingByBranch(ctx context.Context, branchID uint) ([]*models.Loan, error)
	// ListByBranch filters by status when status is non-nil.
	ListByBranch(ctx context.Context, branchID uint, status *string, offset, limit int) ([]*models.Loan, int64, error)
	Update(ctx context.Context, loan *models.Loan) error
	NextID(ctx context.Context) (uint, error)
}

// LoanEMIRepository defines EMI schedule data access
type LoanEMIRepository interface {
	CreateBatch(ctx context.Context, rows []models.LoanEMI) error
	ListByLoan(ctx context.Context, loanID uint) ([]*models.LoanEMI, error)
	// MarkOverdue flips unpaid rows whose due date has passed to
	// OVERDUE and reports how many rows changed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// TransactionFilter narrows branch-level transaction monitoring.
// Nil fields are not applied.
type TransactionFilter struct {
	AccountID *uint
	TxType    *string
}

// TransactionRepository defines read access to the ledger. Writes go
// through LedgerStore so every balance mutation and its ledger row
// commit together.
type TransactionRepository interface {
	// ListByAccount returns the newest rows first, up to limit, with an
	// optional created-at lower bound.
	ListByAccount(ctx context.Context, accountID uint, limit int, from *time.Time) ([]*models.Transaction, error)
	ListRecentByCustomer(ctx context.Context, customerID uint, limit int) ([]*models.Transaction, error)
	ListByBranch(ctx context.Context, branchID uint, filter TransactionFilter) ([]*models.Transaction, error)
	// Statement returns rows oldest first within the optional date range.
	Statement(ctx context.Context, accountID uint, start, end *time.Time) ([]*models.Transaction, error)
}

// LedgerTx is the unit of work handed to a ledger mutation. All methods
// operate inside the surrounding database transaction. Loan approval
// writes travel through the same unit so the status change, the EMI
// schedule and the disbursement commit together.
type LedgerTx interface {
	// LockAccounts loads the given rows with exclusive row locks,
	// acquiring them in ascending id order. Missing ids are simply
	// absent from the result map.
	LockAccounts(ids ...uint) (map[uint]*models.Account, error)
	UpdateBalance(accountID uint, balance decimal.Decimal) error
	AppendTransaction(tx *models.Transaction) error
	UpdateLoan(loan *models.Loan) error
	CreateEMIBatch(rows []models.LoanEMI) error
}

// LedgerStore runs ledger mutations atomically: balance updates and
// their transaction rows either all commit or none do.
type LedgerStore interface {
	WithTransaction(ctx context.Context, fn func(tx LedgerTx) error) error
}
