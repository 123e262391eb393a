package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Interest rates by loan type, percent per annum
var loanInterestRates = map[string]decimal.Decimal{
	"Personal":  decimal.NewFromFloat(12.0),
	"Home":      decimal.NewFromFloat(8.5),
	"Auto":      decimal.NewFromFloat(9.0),
	"Education": decimal.NewFromFloat(9.0),
	"Business":  decimal.NewFromFloat(11.0),
}

var defaultInterestRate = decimal.NewFromFloat(10.0)

// InterestRateFor returns the annual rate applied to a loan type
func InterestRateFor(loanType string) decimal.Decimal {
	if rate, ok := loanInterestRates[loanType]; ok {
		return rate
	}
	return defaultInterestRate
}

// CalculateEMI returns the fixed monthly instalment for a principal at
// an annual percentage rate over tenure months, rounded to 2 places.
// A zero rate degrades to principal divided by tenure.
func CalculateEMI(principal decimal.Decimal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 {
		return decimal.Zero
	}
	p, _ := principal.Float64()
	rate, _ := annualRate.Float64()
	if rate == 0 {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	}
	r := rate / 1200.0
	factor := math.Pow(1+r, float64(tenureMonths))
	emi := p * r * factor / (factor - 1)
	return decimal.NewFromFloat(emi).Round(2)
}

// LoanService handles loan applications, approval workflow and EMI
// schedules. Approval disburses the principal to the linked account
// through the ledger.
type LoanService struct {
	loanRepo    repositories.LoanRepository
	loanEMIRepo repositories.LoanEMIRepository
	accountRepo repositories.AccountRepository
	ledger      repositories.LedgerStore
	transfers   *TransferService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	loanEMIRepo repositories.LoanEMIRepository,
	accountRepo repositories.AccountRepository,
	ledger repositories.LedgerStore,
	transfers *TransferService,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		loanEMIRepo: loanEMIRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
		transfers:   transfers,
	}
}

// RequestLoanInput carries a customer's loan application
type RequestLoanInput struct {
	CustomerID      uint
	LinkedAccountID uint
	LoanType        string
	Principal       decimal.Decimal
	TenureMonths    int
}

// RequestLoan records a PENDING application. The interest rate comes
// from the loan type; the EMI is fixed at application time.
func (s *LoanService) RequestLoan(ctx context.Context, input RequestLoanInput) (*models.Loan, error) {
	if !input.Principal.IsPositive() || input.TenureMonths < 1 {
		return nil, domain.ErrInvalidInput
	}

	account, err := s.accountRepo.GetByID(ctx, input.LinkedAccountID)
	if err != nil {
		return nil, err
	}
	if account.CustomerID != input.CustomerID {
		return nil, domain.ErrForbidden
	}

	nextID, err := s.loanRepo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	rate := InterestRateFor(input.LoanType)
	loan := &models.Loan{
		CustomerID:         input.CustomerID,
		BranchID:           account.BranchID,
		LinkedAccountID:    account.ID,
		LoanNumber:         fmt.Sprintf("LN%010d", nextID),
		LoanType:           input.LoanType,
		PrincipalAmount:    input.Principal,
		InterestRate:       rate,
		TenureMonths:       input.TenureMonths,
		EMIAmount:          CalculateEMI(input.Principal, rate, input.TenureMonths),
		OutstandingBalance: input.Principal,
		Status:             models.LoanStatusPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// CustomerLoans returns a customer's loans, newest first
func (s *LoanService) CustomerLoans(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByCustomer(ctx, customerID)
}

// Loan returns a single loan with its relations
func (s *LoanService) Loan(ctx context.Context, loanID uint) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, loanID)
}

// EMISchedule returns the repayment rows of a loan in instalment order
func (s *LoanService) EMISchedule(ctx context.Context, loanID uint) ([]*models.LoanEMI, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.loanEMIRepo.ListByLoan(ctx, loanID)
}

// PendingLoans lists PENDING applications for a branch, oldest first
func (s *LoanService) PendingLoans(ctx context.Context, branchID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListPendingByBranch(ctx, branchID)
}

// BranchLoans lists a branch's loans with an optional status filter
func (s *LoanService) BranchLoans(ctx context.Context, branchID uint, status *string, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.ListByBranch(ctx, branchID, status, offset, limit)
}

// Approve moves a PENDING loan to APPROVED, writes the full EMI
// schedule and disburses the principal to the linked account. The
// status change, the schedule and the disbursement commit in one
// ledger transaction, so a failed approval leaves the loan PENDING
// and can simply be retried. Only PENDING loans can be approved.
func (s *LoanService) Approve(ctx context.Context, loanID, employeeID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, domain.ErrLoanNotPending
	}

	now := time.Now()
	loan.Status = models.LoanStatusApproved
	loan.EmployeeID = &employeeID
	loan.DisbursementDate = &now

	schedule := make([]models.LoanEMI, 0, loan.TenureMonths)
	for i := 1; i <= loan.TenureMonths; i++ {
		schedule = append(schedule, models.LoanEMI{
			LoanID:    loan.ID,
			EMINumber: i,
			DueDate:   now.AddDate(0, i, 0),
			Amount:    loan.EMIAmount,
			Status:    models.EMIStatusDue,
		})
	}

	err = s.ledger.WithTransaction(ctx, func(tx repositories.LedgerTx) error {
		if err := tx.UpdateLoan(loan); err != nil {
			return err
		}
		if err := tx.CreateEMIBatch(schedule); err != nil {
			return err
		}
		_, err := s.transfers.DepositTx(tx, loan.LinkedAccountID, loan.PrincipalAmount,
			"Loan disbursement "+loan.LoanNumber)
		return err
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// Reject moves a PENDING loan to REJECTED
func (s *LoanService) Reject(ctx context.Context, loanID, employeeID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, domain.ErrLoanNotPending
	}

	loan.Status = models.LoanStatusRejected
	loan.EmployeeID = &employeeID

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// MarkOverdueEMIs flips unpaid instalments past their due date to
// OVERDUE. Called from the daily cron sweep.
func (s *LoanService) MarkOverdueEMIs(ctx context.Context, asOf time.Time) (int64, error) {
	return s.loanEMIRepo.MarkOverdue(ctx, asOf)
}
