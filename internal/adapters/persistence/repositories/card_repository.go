package repositories

import (
	"context"
	"errors"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"gorm.io/gorm"
)

// cardRepository is the GORM implementation of CardRepository
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	err := r.db.WithContext(ctx).Create(card).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *cardRepository) GetByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Preload("Account").
		First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.WithContext(ctx).
		Preload("Account").
		Joins("JOIN accounts ON accounts.account_id = cards.account_id").
		Where("accounts.customer_id = ?", customerID).
		Order("cards.issued_date DESC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) ListByBranch(ctx context.Context, branchID uint) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.WithContext(ctx).
		Preload("Account").
		Joins("JOIN accounts ON accounts.account_id = cards.account_id").
		Where("accounts.branch_id = ?", branchID).
		Order("cards.issued_date DESC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("card_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
