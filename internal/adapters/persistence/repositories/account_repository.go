package repositories

import (
	"context"
	"errors"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// accountRepository is the GORM implementation of AccountRepository
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	err := r.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Branch").
		First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetBalance(ctx context.Context, id uint) (decimal.Decimal, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Select("balance").
		First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (r *accountRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Where("customer_id = ?", customerID).
		Order("opened_at ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error
	return count > 0, err
}
