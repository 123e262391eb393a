package repositories

import (
	"context"
	"errors"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository is the GORM implementation of LoanRepository
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	err := r.db.WithContext(ctx).Create(loan).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Branch").
		Preload("LinkedAccount").
		Preload("Approver").
		First(&loan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("LinkedAccount").
		Preload("Branch").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) ListPendingByBranch(ctx context.Context, branchID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("LinkedAccount").
		Where("branch_id = ? AND status = ?", branchID, models.LoanStatusPending).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) ListByBranch(ctx context.Context, branchID uint, status *string, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Loan{}).Where("branch_id = ?", branchID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").
		Preload("LinkedAccount").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	return loans, total, err
}

func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *loanRepository) NextID(ctx context.Context) (uint, error) {
	var next uint
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("COALESCE(MAX(loan_id), 0) + 1").
		Scan(&next).Error
	return next, err
}

// loanEMIRepository is the GORM implementation of LoanEMIRepository
type loanEMIRepository struct {
	db *gorm.DB
}

// NewLoanEMIRepository creates a new EMI schedule repository
func NewLoanEMIRepository(db *gorm.DB) LoanEMIRepository {
	return &loanEMIRepository{db: db}
}

func (r *loanEMIRepository) CreateBatch(ctx context.Context, rows []models.LoanEMI) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *loanEMIRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.LoanEMI, error) {
	var rows []*models.LoanEMI
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("emi_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *loanEMIRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LoanEMI{}).
		Where("status = ? AND due_date < ?", models.EMIStatusDue, asOf).
		Update("status", models.EMIStatusOverdue)
	return result.RowsAffected, result.Error
}
