package repositories

import (
	"context"
	"errors"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"gorm.io/gorm"
)

// branchRepository is the GORM implementation of BranchRepository
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) GetByID(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).First(&branch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context) ([]*models.Branch, error) {
	var branches []*models.Branch
	err := r.db.WithContext(ctx).Order("branch_id ASC").Find(&branches).Error
	return branches, err
}

// employeeRepository is the GORM implementation of EmployeeRepository
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Preload("Branch").First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) ListByBranch(ctx context.Context, branchID uint) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}
