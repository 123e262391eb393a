package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLedger is an in-memory LedgerStore. A single mutex serializes
// transactions the way row locks do in the database; on error the
// state snapshot is restored so failed transactions roll back.
type memLedger struct {
	mu       sync.Mutex
	balances map[uint]decimal.Decimal
	rows     []*models.Transaction
	loans    map[uint]models.Loan
	emis     []models.LoanEMI
	nextID   uint

	failEMIBatch bool
}

func newMemLedger(balances map[uint]decimal.Decimal) *memLedger {
	copied := make(map[uint]decimal.Decimal, len(balances))
	for id, b := range balances {
		copied[id] = b
	}
	return &memLedger{
		balances: copied,
		loans:    make(map[uint]models.Loan),
	}
}

func (m *memLedger) WithTransaction(ctx context.Context, fn func(tx repositories.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balanceSnap := make(map[uint]decimal.Decimal, len(m.balances))
	for id, b := range m.balances {
		balanceSnap[id] = b
	}
	loanSnap := make(map[uint]models.Loan, len(m.loans))
	for id, l := range m.loans {
		loanSnap[id] = l
	}
	rowCount := len(m.rows)
	emiCount := len(m.emis)

	if err := fn(&memLedgerTx{store: m}); err != nil {
		m.balances = balanceSnap
		m.loans = loanSnap
		m.rows = m.rows[:rowCount]
		m.emis = m.emis[:emiCount]
		return err
	}
	return nil
}

type memLedgerTx struct {
	store *memLedger
}

func (t *memLedgerTx) LockAccounts(ids ...uint) (map[uint]*models.Account, error) {
	locked := make(map[uint]*models.Account, len(ids))
	for _, id := range ids {
		balance, ok := t.store.balances[id]
		if !ok {
			continue
		}
		locked[id] = &models.Account{ID: id, Balance: balance}
	}
	return locked, nil
}

func (t *memLedgerTx) UpdateBalance(accountID uint, balance decimal.Decimal) error {
	t.store.balances[accountID] = balance
	return nil
}

func (t *memLedgerTx) AppendTransaction(tx *models.Transaction) error {
	t.store.nextID++
	tx.ID = t.store.nextID
	t.store.rows = append(t.store.rows, tx)
	return nil
}

func (t *memLedgerTx) UpdateLoan(loan *models.Loan) error {
	t.store.loans[loan.ID] = *loan
	return nil
}

func (t *memLedgerTx) CreateEMIBatch(rows []models.LoanEMI) error {
	if t.store.failEMIBatch {
		return errors.New("emi batch insert failed")
	}
	t.store.emis = append(t.store.emis, rows...)
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestTransfer(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("25000.00"),
		2: d("5000.00"),
	})
	svc := NewTransferService(ledger)

	result, err := svc.Transfer(context.Background(), 1, 2, d("10000.00"), "Rent")
	require.NoError(t, err)

	assert.True(t, result.FromBalance.Equal(d("15000.00")))
	assert.True(t, result.ToBalance.Equal(d("15000.00")))

	require.NotNil(t, result.Debit)
	require.NotNil(t, result.Credit)
	assert.Equal(t, models.TxTypeDebit, result.Debit.TxType)
	assert.Equal(t, models.TxTypeCredit, result.Credit.TxType)
	assert.Equal(t, "Rent", result.Debit.Description)

	// The legs reference each other's accounts
	require.NotNil(t, result.Debit.RelatedAccount)
	require.NotNil(t, result.Credit.RelatedAccount)
	assert.Equal(t, uint(2), *result.Debit.RelatedAccount)
	assert.Equal(t, uint(1), *result.Credit.RelatedAccount)

	// balance_after matches the committed balances
	assert.True(t, result.Debit.BalanceAfter.Equal(d("15000.00")))
	assert.True(t, result.Credit.BalanceAfter.Equal(d("15000.00")))

	assert.Len(t, ledger.rows, 2)
}

func TestTransferSeedBalances(t *testing.T) {
	// 5000 moved between the first two seeded accounts.
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("25000.00"),
		2: d("10000.00"),
	})
	svc := NewTransferService(ledger)

	result, err := svc.Transfer(context.Background(), 1, 2, d("5000.00"), "")
	require.NoError(t, err)

	assert.True(t, result.FromBalance.Equal(d("20000.00")))
	assert.True(t, result.ToBalance.Equal(d("15000.00")))
	assert.True(t, ledger.balances[1].Equal(d("20000.00")))
	assert.True(t, ledger.balances[2].Equal(d("15000.00")))

	require.Len(t, ledger.rows, 2)
	debit, credit := ledger.rows[0], ledger.rows[1]
	assert.Equal(t, models.TxTypeDebit, debit.TxType)
	assert.True(t, debit.Amount.Equal(d("5000.00")))
	assert.True(t, debit.BalanceAfter.Equal(d("20000.00")))
	assert.Equal(t, models.TxTypeCredit, credit.TxType)
	assert.True(t, credit.Amount.Equal(d("5000.00")))
	assert.True(t, credit.BalanceAfter.Equal(d("15000.00")))
}

func TestTransferInsufficientFunds(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("100.00"),
		2: d("50.00"),
	})
	svc := NewTransferService(ledger)

	_, err := svc.Transfer(context.Background(), 1, 2, d("100.01"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Nothing changed
	assert.True(t, ledger.balances[1].Equal(d("100.00")))
	assert.True(t, ledger.balances[2].Equal(d("50.00")))
	assert.Empty(t, ledger.rows)
}

func TestTransferExactBalance(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("100.00"),
		2: d("0.00"),
	})
	svc := NewTransferService(ledger)

	result, err := svc.Transfer(context.Background(), 1, 2, d("100.00"), "")
	require.NoError(t, err)
	assert.True(t, result.FromBalance.IsZero())
	assert.True(t, result.ToBalance.Equal(d("100.00")))
}

func TestTransferValidation(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{1: d("100.00")})
	svc := NewTransferService(ledger)
	ctx := context.Background()

	_, err := svc.Transfer(ctx, 1, 1, d("10.00"), "")
	assert.ErrorIs(t, err, domain.ErrSameAccount)

	_, err = svc.Transfer(ctx, 1, 2, d("0"), "")
	assert.ErrorIs(t, err, domain.ErrAmountInvalid)

	_, err = svc.Transfer(ctx, 1, 2, d("-5.00"), "")
	assert.ErrorIs(t, err, domain.ErrAmountInvalid)

	_, err = svc.Transfer(ctx, 1, 99, d("10.00"), "")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.Transfer(ctx, 99, 1, d("10.00"), "")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransferDefaultDescription(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("100.00"),
		2: d("0.00"),
	})
	svc := NewTransferService(ledger)

	result, err := svc.Transfer(context.Background(), 1, 2, d("10.00"), "")
	require.NoError(t, err)
	assert.Equal(t, "Transfer", result.Debit.Description)
	assert.Equal(t, "Transfer", result.Credit.Description)
}

func TestConcurrentTransfersConserveMoney(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{
		1: d("10000.00"),
		2: d("10000.00"),
	})
	svc := NewTransferService(ledger)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := uint(1), uint(2)
			if i%2 == 0 {
				from, to = to, from
			}
			// Insufficient funds is acceptable under contention
			_, err := svc.Transfer(context.Background(), from, to, d("700.00"), "")
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
			}
		}(i)
	}
	wg.Wait()

	total := ledger.balances[1].Add(ledger.balances[2])
	assert.True(t, total.Equal(d("20000.00")), "total changed: %s", total)

	// Every committed transfer wrote exactly two rows
	assert.Equal(t, 0, len(ledger.rows)%2)

	// No account went negative
	assert.False(t, ledger.balances[1].IsNegative())
	assert.False(t, ledger.balances[2].IsNegative())
}

func TestDeposit(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{1: d("50.00")})
	svc := NewTransferService(ledger)

	row, err := svc.Deposit(context.Background(), 1, d("25.50"), "")
	require.NoError(t, err)
	assert.Equal(t, models.TxTypeDeposit, row.TxType)
	assert.Equal(t, "Deposit", row.Description)
	assert.True(t, row.BalanceAfter.Equal(d("75.50")))
	assert.Nil(t, row.RelatedAccount)
	assert.True(t, ledger.balances[1].Equal(d("75.50")))
}

func TestWithdraw(t *testing.T) {
	ledger := newMemLedger(map[uint]decimal.Decimal{1: d("50.00")})
	svc := NewTransferService(ledger)

	row, err := svc.Withdraw(context.Background(), 1, d("20.00"), "ATM")
	require.NoError(t, err)
	assert.Equal(t, models.TxTypeWithdrawal, row.TxType)
	assert.True(t, row.BalanceAfter.Equal(d("30.00")))

	_, err = svc.Withdraw(context.Background(), 1, d("30.01"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, ledger.balances[1].Equal(d("30.00")))
}
