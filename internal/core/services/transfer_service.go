package services

import (
	"context"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TransferService owns every balance mutation. Each operation runs as
// one database transaction: the locked balance update and its ledger
// rows commit together or not at all, so no partial transfer is ever
// observable.
type TransferService struct {
	ledger repositories.LedgerStore
}

// NewTransferService creates a new transfer service
func NewTransferService(ledger repositories.LedgerStore) *TransferService {
	return &TransferService{ledger: ledger}
}

// TransferResult reports the committed state of a transfer
type TransferResult struct {
	FromBalance decimal.Decimal     `json:"from_balance"`
	ToBalance   decimal.Decimal     `json:"to_balance"`
	Debit       *models.Transaction `json:"debit"`
	Credit      *models.Transaction `json:"credit"`
}

// Transfer moves amount from one account to another. Both rows are
// locked for the duration of the transaction; the source is verified to
// cover the amount before any write happens.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID uint, amount decimal.Decimal, description string) (*TransferResult, error) {
	if fromID == toID {
		return nil, domain.ErrSameAccount
	}
	if !amount.IsPositive() {
		return nil, domain.ErrAmountInvalid
	}
	if description == "" {
		description = "Transfer"
	}

	var result *TransferResult
	err := s.ledger.WithTransaction(ctx, func(tx repositories.LedgerTx) error {
		accounts, err := tx.LockAccounts(fromID, toID)
		if err != nil {
			return err
		}

		from, ok := accounts[fromID]
		if !ok {
			return domain.ErrAccountNotFound
		}
		to, ok := accounts[toID]
		if !ok {
			return domain.ErrAccountNotFound
		}

		if from.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		newFrom := from.Balance.Sub(amount)
		newTo := to.Balance.Add(amount)

		if err := tx.UpdateBalance(fromID, newFrom); err != nil {
			return err
		}
		if err := tx.UpdateBalance(toID, newTo); err != nil {
			return err
		}

		debit := &models.Transaction{
			AccountID:      fromID,
			TxType:         models.TxTypeDebit,
			Amount:         amount,
			BalanceAfter:   newFrom,
			RelatedAccount: &toID,
			Description:    description,
		}
		if err := tx.AppendTransaction(debit); err != nil {
			return err
		}

		credit := &models.Transaction{
			AccountID:      toID,
			TxType:         models.TxTypeCredit,
			Amount:         amount,
			BalanceAfter:   newTo,
			RelatedAccount: &fromID,
			Description:    description,
		}
		if err := tx.AppendTransaction(credit); err != nil {
			return err
		}

		result = &TransferResult{
			FromBalance: newFrom,
			ToBalance:   newTo,
			Debit:       debit,
			Credit:      credit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Deposit credits an account and appends the DEPOSIT ledger row.
func (s *TransferService) Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountInvalid
	}
	if description == "" {
		description = "Deposit"
	}
	return s.applySingleLeg(ctx, accountID, models.TxTypeDeposit, amount, description)
}

// Withdraw debits an account and appends the WITHDRAWAL ledger row.
// The balance may not go negative.
func (s *TransferService) Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountInvalid
	}
	if description == "" {
		description = "Withdrawal"
	}
	return s.applySingleLeg(ctx, accountID, models.TxTypeWithdrawal, amount, description)
}

// DepositTx credits an account inside an already open ledger
// transaction, so callers can commit the deposit together with their
// own writes. Loan approval disburses through this.
func (s *TransferService) DepositTx(tx repositories.LedgerTx, accountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountInvalid
	}
	if description == "" {
		description = "Deposit"
	}
	return applyLeg(tx, accountID, models.TxTypeDeposit, amount, description)
}

// applySingleLeg performs a one-account balance change in its own
// transaction, under the same lock-check-mutate-append discipline as
// Transfer.
func (s *TransferService) applySingleLeg(ctx context.Context, accountID uint, txType string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var row *models.Transaction
	err := s.ledger.WithTransaction(ctx, func(tx repositories.LedgerTx) error {
		var err error
		row, err = applyLeg(tx, accountID, txType, amount, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func applyLeg(tx repositories.LedgerTx, accountID uint, txType string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	accounts, err := tx.LockAccounts(accountID)
	if err != nil {
		return nil, err
	}
	account, ok := accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	var newBalance decimal.Decimal
	switch txType {
	case models.TxTypeWithdrawal, models.TxTypeDebit:
		if account.Balance.LessThan(amount) {
			return nil, domain.ErrInsufficientFunds
		}
		newBalance = account.Balance.Sub(amount)
	default:
		newBalance = account.Balance.Add(amount)
	}

	if err := tx.UpdateBalance(accountID, newBalance); err != nil {
		return nil, err
	}

	row := &models.Transaction{
		AccountID:    accountID,
		TxType:       txType,
		Amount:       amount,
		BalanceAfter: newBalance,
		Description:  description,
	}
	if err := tx.AppendTransaction(row); err != nil {
		return nil, err
	}
	return row, nil
}
