package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ledgerStore is the GORM implementation of LedgerStore
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store
func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) WithTransaction(ctx context.Context, fn func(tx LedgerTx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{tx: tx})
	})
	return translateLedgerError(err)
}

// ledgerTx wraps one open database transaction
type ledgerTx struct {
	tx *gorm.DB
}

func (l *ledgerTx) LockAccounts(ids ...uint) (map[uint]*models.Account, error) {
	// Lock in ascending id order so concurrent transfers touching the
	// same pair of accounts cannot deadlock.
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make(map[uint]*models.Account, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		var account models.Account
		err := l.tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[id] = &account
	}
	return locked, nil
}

func (l *ledgerTx) UpdateBalance(accountID uint, balance decimal.Decimal) error {
	return l.tx.
		Model(&models.Account{}).
		Where("account_id = ?", accountID).
		Update("balance", balance).Error
}

func (l *ledgerTx) AppendTransaction(tx *models.Transaction) error {
	if tx.ReferenceID == "" {
		tx.ReferenceID = uuid.NewString()
	}
	return l.tx.Create(tx).Error
}

func (l *ledgerTx) UpdateLoan(loan *models.Loan) error {
	return l.tx.Save(loan).Error
}

func (l *ledgerTx) CreateEMIBatch(rows []models.LoanEMI) error {
	if len(rows) == 0 {
		return nil
	}
	return l.tx.Create(&rows).Error
}

// translateLedgerError maps driver-level lock contention to the
// retryable domain error. Domain errors raised inside fn pass through
// untouched.
func translateLedgerError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "Lock wait timeout") || strings.Contains(msg, "Deadlock found") {
		return domain.ErrBusy
	}
	return err
}
