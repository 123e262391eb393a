package repositories

import (
	"context"
	"errors"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"gorm.io/gorm"
)

// customerRepository is the GORM implementation of CustomerRepository
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Create(customer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Search(ctx context.Context, query string) ([]*models.Customer, error) {
	var customers []*models.Customer
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR mobile LIKE ?",
			like, like, like, like).
		Order("created_at DESC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) ListRecentByBranch(ctx context.Context, branchID uint, limit int) ([]*models.Customer, error) {
	var customers []*models.Customer
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.customer_id = customers.customer_id").
		Where("accounts.branch_id = ?", branchID).
		Group("customers.customer_id").
		Order("customers.created_at DESC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}
