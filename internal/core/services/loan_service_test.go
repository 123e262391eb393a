package services

import (
	"context"
	"testing"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		tenure    int
		want      string
	}{
		{"personal 200k 12% 24mo", "200000", "12.0", 24, "9414.69"},
		{"home 1m 8.5% 120mo", "1000000", "8.5", 120, "12398.57"},
		{"zero rate splits evenly", "12000", "0", 12, "1000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEMI(d(tt.principal), d(tt.rate), tt.tenure)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCalculateEMIInvalidTenure(t *testing.T) {
	assert.True(t, CalculateEMI(d("1000"), d("10"), 0).IsZero())
	assert.True(t, CalculateEMI(d("1000"), d("10"), -1).IsZero())
}

// memLoanRepo reads and writes loans in a memLedger so approval
// rollbacks are visible to subsequent reads.
type memLoanRepo struct {
	store *memLedger
}

func (r *memLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	loan.ID = uint(len(r.store.loans) + 1)
	r.store.loans[loan.ID] = *loan
	return nil
}

func (r *memLoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, ok := r.store.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	copied := loan
	return &copied, nil
}

func (r *memLoanRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	return nil, nil
}

func (r *memLoanRepo) ListPendingByBranch(ctx context.Context, branchID uint) ([]*models.Loan, error) {
	return nil, nil
}

func (r *memLoanRepo) ListByBranch(ctx context.Context, branchID uint, status *string, offset, limit int) ([]*models.Loan, int64, error) {
	return nil, 0, nil
}

func (r *memLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	r.store.loans[loan.ID] = *loan
	return nil
}

func (r *memLoanRepo) NextID(ctx context.Context) (uint, error) {
	return uint(len(r.store.loans) + 1), nil
}

func pendingLoanFixture() models.Loan {
	return models.Loan{
		ID:                 1,
		CustomerID:         3,
		BranchID:           2,
		LinkedAccountID:    3,
		LoanNumber:         "LN0000000001",
		LoanType:           "Personal",
		PrincipalAmount:    d("200000.00"),
		InterestRate:       d("12.00"),
		TenureMonths:       24,
		EMIAmount:          d("9414.69"),
		OutstandingBalance: d("200000.00"),
		Status:             models.LoanStatusPending,
	}
}

func newLoanWorkbench() (*LoanService, *memLedger) {
	ledger := newMemLedger(map[uint]decimal.Decimal{3: d("0.00")})
	ledger.loans[1] = pendingLoanFixture()
	repo := &memLoanRepo{store: ledger}
	svc := NewLoanService(repo, nil, nil, ledger, NewTransferService(ledger))
	return svc, ledger
}

func TestApproveLoan(t *testing.T) {
	svc, ledger := newLoanWorkbench()

	loan, err := svc.Approve(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	require.NotNil(t, loan.EmployeeID)
	assert.Equal(t, uint(2), *loan.EmployeeID)
	require.NotNil(t, loan.DisbursementDate)

	stored := ledger.loans[1]
	assert.Equal(t, models.LoanStatusApproved, stored.Status)

	// Full schedule, one instalment per month from disbursement
	require.Len(t, ledger.emis, 24)
	for i, emi := range ledger.emis {
		assert.Equal(t, uint(1), emi.LoanID)
		assert.Equal(t, i+1, emi.EMINumber)
		assert.Equal(t, models.EMIStatusDue, emi.Status)
		assert.True(t, emi.Amount.Equal(d("9414.69")))
		assert.Equal(t, loan.DisbursementDate.AddDate(0, i+1, 0), emi.DueDate)
	}

	// Principal disbursed to the linked account through the ledger
	assert.True(t, ledger.balances[3].Equal(d("200000.00")))
	require.Len(t, ledger.rows, 1)
	assert.Equal(t, models.TxTypeDeposit, ledger.rows[0].TxType)
	assert.Equal(t, "Loan disbursement LN0000000001", ledger.rows[0].Description)
	assert.True(t, ledger.rows[0].BalanceAfter.Equal(d("200000.00")))

	// Terminal states cannot be approved again
	_, err = svc.Approve(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
}

func TestApproveLoanRollsBackOnScheduleFailure(t *testing.T) {
	svc, ledger := newLoanWorkbench()

	ledger.failEMIBatch = true
	_, err := svc.Approve(context.Background(), 1, 2)
	require.Error(t, err)

	// Nothing committed: loan still PENDING, no schedule, no payout
	stored := ledger.loans[1]
	assert.Equal(t, models.LoanStatusPending, stored.Status)
	assert.Nil(t, stored.EmployeeID)
	assert.Empty(t, ledger.emis)
	assert.Empty(t, ledger.rows)
	assert.True(t, ledger.balances[3].IsZero())

	// A retry after the fault clears goes through
	ledger.failEMIBatch = false
	loan, err := svc.Approve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.Len(t, ledger.emis, 24)
	assert.True(t, ledger.balances[3].Equal(d("200000.00")))
}

func TestRejectLoan(t *testing.T) {
	svc, ledger := newLoanWorkbench()

	loan, err := svc.Reject(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusRejected, loan.Status)
	require.NotNil(t, loan.EmployeeID)
	assert.Equal(t, uint(2), *loan.EmployeeID)

	// No schedule, no money movement
	assert.Empty(t, ledger.emis)
	assert.Empty(t, ledger.rows)
	assert.True(t, ledger.balances[3].IsZero())

	_, err = svc.Reject(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
	_, err = svc.Approve(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
}

func TestInterestRateFor(t *testing.T) {
	assert.True(t, InterestRateFor("Personal").Equal(d("12")))
	assert.True(t, InterestRateFor("Home").Equal(d("8.5")))
	assert.True(t, InterestRateFor("Auto").Equal(d("9")))
	assert.True(t, InterestRateFor("Education").Equal(d("9")))
	assert.True(t, InterestRateFor("Business").Equal(d("11")))

	// Unknown types get the default rate
	assert.True(t, InterestRateFor("Yacht").Equal(d("10")))
	assert.True(t, InterestRateFor("").Equal(d("10")))
}
