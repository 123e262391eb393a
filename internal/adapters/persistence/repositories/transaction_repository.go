package repositories

import (
	"context"
	"time"

	"bankdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository is the GORM implementation of TransactionRepository
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uint, limit int, from *time.Time) ([]*models.Transaction, error) {
	var txs []*models.Transaction

	query := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}

	err := query.
		Order("created_at DESC, tx_id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) ListRecentByCustomer(ctx context.Context, customerID uint, limit int) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Account").
		Joins("JOIN accounts ON accounts.account_id = transactions.account_id").
		Where("accounts.customer_id = ?", customerID).
		Order("transactions.created_at DESC, transactions.tx_id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) ListByBranch(ctx context.Context, branchID uint, filter TransactionFilter) ([]*models.Transaction, error) {
	var txs []*models.Transaction

	query := r.db.WithContext(ctx).
		Preload("Account").
		Joins("JOIN accounts ON accounts.account_id = transactions.account_id").
		Where("accounts.branch_id = ?", branchID)

	if filter.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *filter.AccountID)
	}
	if filter.TxType != nil {
		query = query.Where("transactions.tx_type = ?", *filter.TxType)
	}

	err := query.
		Order("transactions.created_at DESC, transactions.tx_id DESC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) Statement(ctx context.Context, accountID uint, start, end *time.Time) ([]*models.Transaction, error) {
	var txs []*models.Transaction

	query := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		// Inclusive upper bound: advance to the start of the next day.
		query = query.Where("created_at < ?", end.AddDate(0, 0, 1))
	}

	err := query.
		Order("created_at ASC, tx_id ASC").
		Find(&txs).Error
	return txs, err
}
