package services

import (
	"context"
	"errors"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService handles branch-level aggregates for the back office.
// It queries the database directly; these are read-only rollups with
// no business rules to share.
type ReportService struct {
	db              *gorm.DB
	transactionRepo repositories.TransactionRepository
	customerRepo    repositories.CustomerRepository
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, transactionRepo repositories.TransactionRepository, customerRepo repositories.CustomerRepository) *ReportService {
	return &ReportService{
		db:              db,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
	}
}

// BranchReport represents one branch's position
type BranchReport struct {
	BranchID      uint            `json:"branch_id"`
	TotalAccounts int64           `json:"total_accounts"`
	TotalDeposits decimal.Decimal `json:"total_deposits"`
	TotalCards    int64           `json:"total_cards"`
	TotalStaff    int64           `json:"total_staff"`

	PendingLoans    int64           `json:"pending_loans"`
	ApprovedLoans   int64           `json:"approved_loans"`
	RejectedLoans   int64           `json:"rejected_loans"`
	DisbursedAmount decimal.Decimal `json:"disbursed_amount"`

	RecentCustomers []*models.Customer `json:"recent_customers"`
}

// GetBranchReport returns the branch position: account and deposit
// totals, loan pipeline counts and the newest customers with accounts
// at the branch.
func (s *ReportService) GetBranchReport(ctx context.Context, branchID uint) (*BranchReport, error) {
	report := &BranchReport{BranchID: branchID}

	// Account totals
	if err := s.db.WithContext(ctx).Table("accounts").
		Where("branch_id = ?", branchID).
		Count(&report.TotalAccounts).Error; err != nil {
		return nil, err
	}

	deposits, err := s.sumDecimal(ctx, "accounts", "balance", "branch_id = ?", branchID)
	if err != nil {
		return nil, err
	}
	report.TotalDeposits = deposits

	// Loan pipeline
	loanCount := func(status string, out *int64) error {
		return s.db.WithContext(ctx).Table("loans").
			Where("branch_id = ? AND status = ?", branchID, status).
			Count(out).Error
	}
	if err := loanCount(models.LoanStatusPending, &report.PendingLoans); err != nil {
		return nil, err
	}
	if err := loanCount(models.LoanStatusApproved, &report.ApprovedLoans); err != nil {
		return nil, err
	}
	if err := loanCount(models.LoanStatusRejected, &report.RejectedLoans); err != nil {
		return nil, err
	}

	disbursed, err := s.sumDecimal(ctx, "loans", "principal_amount",
		"branch_id = ? AND status = ?", branchID, models.LoanStatusApproved)
	if err != nil {
		return nil, err
	}
	report.DisbursedAmount = disbursed

	// Cards issued against the branch's accounts
	if err := s.db.WithContext(ctx).Table("cards").
		Joins("JOIN accounts ON accounts.account_id = cards.account_id").
		Where("accounts.branch_id = ?", branchID).
		Count(&report.TotalCards).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table("employees").
		Where("branch_id = ?", branchID).
		Count(&report.TotalStaff).Error; err != nil {
		return nil, err
	}

	recent, err := s.customerRepo.ListRecentByBranch(ctx, branchID, 5)
	if err != nil {
		return nil, err
	}
	report.RecentCustomers = recent

	return report, nil
}

// sumDecimal runs a COALESCEd SUM over a DECIMAL column. The result is
// scanned as a string so the value never passes through float64.
func (s *ReportService) sumDecimal(ctx context.Context, table, column, where string, args ...interface{}) (decimal.Decimal, error) {
	var raw string
	err := s.db.WithContext(ctx).Table(table).
		Where(where, args...).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// BranchTransactions returns ledger rows across all of a branch's
// accounts, optionally narrowed by account or type.
func (s *ReportService) BranchTransactions(ctx context.Context, branchID uint, filter repositories.TransactionFilter) ([]*models.Transaction, error) {
	return s.transactionRepo.ListByBranch(ctx, branchID, filter)
}

// EmployeeDashboardData represents the landing page for a teller
type EmployeeDashboardData struct {
	Employee     *models.Employee `json:"employee"`
	BranchReport *BranchReport    `json:"branch_report"`
}

// GetEmployeeDashboard returns the employee's profile with the report
// for their branch.
func (s *ReportService) GetEmployeeDashboard(ctx context.Context, employeeID uint) (*EmployeeDashboardData, error) {
	var employee models.Employee
	err := s.db.WithContext(ctx).
		Preload("Branch").
		First(&employee, employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}

	report, err := s.GetBranchReport(ctx, employee.BranchID)
	if err != nil {
		return nil, err
	}

	return &EmployeeDashboardData{
		Employee:     &employee,
		BranchReport: report,
	}, nil
}
