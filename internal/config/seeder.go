package config

import (
	"log"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder populates the demo dataset. Every step is idempotent: rows are
// only inserted when the table is still empty, so re-running the server
// against a seeded database is a no-op.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	steps := []func() error{
		s.seedBranches,
		s.seedCustomers,
		s.seedAccounts,
		s.seedEmployees,
		s.seedCards,
		s.seedLoans,
		s.seedTransactions,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func (s *Seeder) seedBranches() error {
	var count int64
	s.db.Model(&models.Branch{}).Count(&count)
	if count > 0 {
		return nil
	}

	branches := []models.Branch{
		{BranchName: "MG Road Branch", Address: "12 MG Road, Bengaluru, Karnataka 560001", IFSCCode: "BKDK0000101"},
		{BranchName: "Connaught Place Branch", Address: "4 Connaught Place, New Delhi 110001", IFSCCode: "BKDK0000102"},
	}
	if err := s.db.Create(&branches).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d branches", len(branches))
	return nil
}

func (s *Seeder) seedCustomers() error {
	var count int64
	s.db.Model(&models.Customer{}).Count(&count)
	if count > 0 {
		return nil
	}

	// Demo credential for every seeded customer and employee.
	hash, err := password.Hash("password")
	if err != nil {
		return err
	}

	customers := []models.Customer{
		{FirstName: "Aarav", LastName: "Sharma", DOB: date(1990, time.April, 12), Email: "aarav.sharma@example.com", Mobile: "9876543210", PasswordHash: hash},
		{FirstName: "Priya", LastName: "Patel", DOB: date(1988, time.November, 2), Email: "priya.patel@example.com", Mobile: "9876543211", PasswordHash: hash},
		{FirstName: "Rohan", LastName: "Mehta", DOB: date(1995, time.June, 23), Email: "rohan.mehta@example.com", Mobile: "9876543212", PasswordHash: hash},
		{FirstName: "Sneha", LastName: "Iyer", DOB: date(1992, time.January, 30), Email: "sneha.iyer@example.com", Mobile: "9876543213", PasswordHash: hash},
	}
	if err := s.db.Create(&customers).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d customers", len(customers))
	return nil
}

func (s *Seeder) seedAccounts() error {
	var count int64
	s.db.Model(&models.Account{}).Count(&count)
	if count > 0 {
		return nil
	}

	accounts := []models.Account{
		{CustomerID: 1, BranchID: 1, AccountNumber: "00100001", Balance: money("25000.00"), AccountType: "Savings", Currency: "INR"},
		{CustomerID: 2, BranchID: 1, AccountNumber: "00100002", Balance: money("10000.00"), AccountType: "Savings", Currency: "INR"},
		{CustomerID: 3, BranchID: 2, AccountNumber: "00200003", Balance: money("52000.00"), AccountType: "Current", Currency: "INR"},
		{CustomerID: 4, BranchID: 2, AccountNumber: "00200004", Balance: money("7500.00"), AccountType: "Savings", Currency: "INR"},
	}
	if err := s.db.Create(&accounts).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d accounts", len(accounts))
	return nil
}

func (s *Seeder) seedEmployees() error {
	var count int64
	s.db.Model(&models.Employee{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := password.Hash("password")
	if err != nil {
		return err
	}

	employees := []models.Employee{
		{BranchID: 1, Name: "Vikram Singh", Role: "Manager", Status: models.EmployeeStatusActive, Salary: money("85000.00"), PasswordHash: hash},
		{BranchID: 1, Name: "Anita Desai", Role: "Teller", Status: models.EmployeeStatusActive, Salary: money("42000.00"), PasswordHash: hash},
		{BranchID: 2, Name: "Rajesh Kumar", Role: "Loan Officer", Status: models.EmployeeStatusOnLeave, Salary: money("56000.00"), PasswordHash: hash},
	}
	if err := s.db.Create(&employees).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d employees", len(employees))
	return nil
}

func (s *Seeder) seedCards() error {
	var count int64
	s.db.Model(&models.Card{}).Count(&count)
	if count > 0 {
		return nil
	}

	cards := []models.Card{
		{
			AccountID:   1,
			CardNumber:  "4012888812345678",
			CardType:    models.CardTypeCredit,
			ExpiryDate:  date(2029, time.March, 31),
			CVV:         "123",
			Status:      models.CardStatusActive,
			CreditLimit: moneyPtr("150000.00"),
		},
		{
			AccountID:       2,
			CardNumber:      "5105105105105100",
			CardType:        models.CardTypeDebit,
			ExpiryDate:      date(2028, time.September, 30),
			CVV:             "456",
			Status:          models.CardStatusActive,
			WithdrawalLimit: moneyPtr("25000.00"),
		},
	}
	if err := s.db.Create(&cards).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d cards", len(cards))
	return nil
}

func (s *Seeder) seedLoans() error {
	var count int64
	s.db.Model(&models.Loan{}).Count(&count)
	if count > 0 {
		return nil
	}

	loan := models.Loan{
		CustomerID:         3,
		BranchID:           2,
		LinkedAccountID:    3,
		LoanNumber:         "LN0000000001",
		LoanType:           "Personal",
		PrincipalAmount:    money("200000.00"),
		InterestRate:       money("12.00"),
		TenureMonths:       24,
		EMIAmount:          money("9414.69"),
		OutstandingBalance: money("200000.00"),
		Status:             models.LoanStatusPending,
	}
	if err := s.db.Create(&loan).Error; err != nil {
		return err
	}
	log.Println("   Seeded 1 loan")
	return nil
}

func (s *Seeder) seedTransactions() error {
	var count int64
	s.db.Model(&models.Transaction{}).Count(&count)
	if count > 0 {
		return nil
	}

	// Opening deposits; balance_after matches the seeded balances.
	txs := []models.Transaction{
		{ReferenceID: uuid.NewString(), AccountID: 1, TxType: models.TxTypeDeposit, Amount: money("25000.00"), BalanceAfter: money("25000.00"), Description: "Opening deposit"},
		{ReferenceID: uuid.NewString(), AccountID: 2, TxType: models.TxTypeDeposit, Amount: money("10000.00"), BalanceAfter: money("10000.00"), Description: "Opening deposit"},
		{ReferenceID: uuid.NewString(), AccountID: 3, TxType: models.TxTypeDeposit, Amount: money("52000.00"), BalanceAfter: money("52000.00"), Description: "Opening deposit"},
		{ReferenceID: uuid.NewString(), AccountID: 4, TxType: models.TxTypeDeposit, Amount: money("7500.00"), BalanceAfter: money("7500.00"), Description: "Opening deposit"},
	}
	if err := s.db.Create(&txs).Error; err != nil {
		return err
	}
	log.Printf("   Seeded %d transactions", len(txs))
	return nil
}
