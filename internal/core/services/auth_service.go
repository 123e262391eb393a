package services

import (
	"context"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/config"
	"bankdesk/internal/core/domain"
	"bankdesk/internal/pkg/jwt"
	"bankdesk/internal/pkg/password"
)

// AuthService handles customer and employee login
type AuthService struct {
	customerRepo repositories.CustomerRepository
	employeeRepo repositories.EmployeeRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	customerRepo repositories.CustomerRepository,
	employeeRepo repositories.EmployeeRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
	}
}

// CustomerLoginOutput carries the token and the authenticated profile
type CustomerLoginOutput struct {
	Token    string                   `json:"token"`
	Customer *models.CustomerResponse `json:"customer"`
}

// CustomerLogin verifies a customer by mobile number and password
func (s *AuthService) CustomerLogin(ctx context.Context, mobile, plainPassword string) (*CustomerLoginOutput, error) {
	customer, err := s.customerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		// Do not reveal whether the mobile number exists.
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(plainPassword, customer.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(
		customer.ID,
		jwt.UserTypeCustomer,
		customer.FullName(),
		0,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	return &CustomerLoginOutput{
		Token:    token,
		Customer: customer.ToResponse(),
	}, nil
}

// EmployeeLoginOutput carries the token and the authenticated employee
type EmployeeLoginOutput struct {
	Token    string           `json:"token"`
	Employee *models.Employee `json:"employee"`
}

// EmployeeLogin verifies an employee by numeric id and password
func (s *AuthService) EmployeeLogin(ctx context.Context, employeeID uint, plainPassword string) (*EmployeeLoginOutput, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(plainPassword, employee.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAccessToken(
		employee.ID,
		jwt.UserTypeEmployee,
		employee.Name,
		employee.BranchID,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	return &EmployeeLoginOutput{
		Token:    token,
		Employee: employee,
	}, nil
}
