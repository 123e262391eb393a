package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Core banking tables
// ============================================================

// Customer represents the customers table
type Customer struct {
	ID           uint      `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	FirstName    string    `gorm:"size:50;not null" json:"first_name"`
	LastName     string    `gorm:"size:50;not null" json:"last_name"`
	DOB          time.Time `gorm:"column:dob;type:date;not null" json:"dob"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Mobile       string    `gorm:"size:15;uniqueIndex;not null" json:"mobile"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID        uint      `json:"customer_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	DOB       time.Time `json:"dob"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		DOB:       c.DOB,
		Email:     c.Email,
		Mobile:    c.Mobile,
		CreatedAt: c.CreatedAt,
	}
}

// Branch represents the branches table (static reference data)
type Branch struct {
	ID         uint   `gorm:"primaryKey;column:branch_id" json:"branch_id"`
	BranchName string `gorm:"size:100;not null" json:"branch_name"`
	Address    string `gorm:"type:text" json:"address"`
	IFSCCode   string `gorm:"column:ifsc_code;type:char(11);uniqueIndex;not null" json:"ifsc_code"`
}

func (Branch) TableName() string {
	return "branches"
}

// Account represents the accounts table.
// Balance is mutated only through the ledger operations in
// services.TransferService; balance >= 0 is an application rule,
// not a database CHECK.
type Account struct {
	ID            uint            `gorm:"primaryKey;column:account_id" json:"account_id"`
	CustomerID    uint            `gorm:"index;not null" json:"customer_id"`
	BranchID      uint            `gorm:"index;not null" json:"branch_id"`
	AccountNumber string          `gorm:"size:20;uniqueIndex;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	AccountType   string          `gorm:"size:20;not null;default:'Savings'" json:"account_type"`
	Currency      string          `gorm:"type:char(3);not null;default:'INR'" json:"currency"`
	OpenedAt      time.Time       `gorm:"autoCreateTime" json:"opened_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}

// Employee represents the employees table
type Employee struct {
	ID           uint            `gorm:"primaryKey;column:employee_id" json:"employee_id"`
	BranchID     uint            `gorm:"index;not null" json:"branch_id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Role         string          `gorm:"size:30;not null" json:"role"`
	Status       string          `gorm:"size:20;not null;default:'Active'" json:"status"`
	Salary       decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// Employee statuses
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusOnLeave  = "On Leave"
	EmployeeStatusResigned = "Resigned"
)

// Card represents the cards table.
// A Credit card carries credit_limit (withdrawal_limit null); a Debit
// card carries withdrawal_limit (credit_limit null). The schema does not
// enforce this with a CHECK; services.CardService validates it.
type Card struct {
	ID              uint             `gorm:"primaryKey;column:card_id" json:"card_id"`
	AccountID       uint             `gorm:"index;not null" json:"account_id"`
	CardNumber      string           `gorm:"column:card_number;type:char(16);uniqueIndex;not null" json:"card_number"`
	CardType        string           `gorm:"size:10;not null" json:"card_type"`
	ExpiryDate      time.Time        `gorm:"type:date;not null" json:"expiry_date"`
	CVV             string           `gorm:"column:cvv;type:char(3);not null" json:"-"`
	Status          string           `gorm:"size:10;not null;default:'Active'" json:"status"`
	CreditLimit     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"credit_limit"`
	WithdrawalLimit *decimal.Decimal `gorm:"type:decimal(12,2)" json:"withdrawal_limit"`
	IssuedDate      time.Time        `gorm:"autoCreateTime" json:"issued_date"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

// Card types
const (
	CardTypeDebit  = "Debit"
	CardTypeCredit = "Credit"
)

// Card statuses
const (
	CardStatusActive  = "Active"
	CardStatusBlocked = "Blocked"
	CardStatusExpired = "Expired"
)

// Loan represents the loans table
type Loan struct {
	ID                 uint            `gorm:"primaryKey;column:loan_id" json:"loan_id"`
	CustomerID         uint            `gorm:"index;not null" json:"customer_id"`
	BranchID           uint            `gorm:"index;not null" json:"branch_id"`
	LinkedAccountID    uint            `gorm:"not null" json:"linked_account_id"`
	LoanNumber         string          `gorm:"size:20;uniqueIndex;not null" json:"loan_number"`
	LoanType           string          `gorm:"size:20;not null" json:"loan_type"`
	PrincipalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TenureMonths       int             `gorm:"not null" json:"tenure_months"`
	EMIAmount          decimal.Decimal `gorm:"column:emi_amount;type:decimal(12,2);not null" json:"emi_amount"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"outstanding_balance"`
	Status             string          `gorm:"size:10;not null;default:'PENDING'" json:"status"`
	EmployeeID         *uint           `json:"employee_id"`
	DisbursementDate   *time.Time      `gorm:"type:date" json:"disbursement_date"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Customer      *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch        *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	LinkedAccount *Account  `gorm:"foreignKey:LinkedAccountID" json:"linked_account,omitempty"`
	Approver      *Employee `gorm:"foreignKey:EmployeeID" json:"approver,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Loan statuses (APPROVED and REJECTED are terminal)
const (
	LoanStatusPending  = "PENDING"
	LoanStatusApproved = "APPROVED"
	LoanStatusRejected = "REJECTED"
)

// LoanEMI represents one repayment row of a loan's EMI schedule
type LoanEMI struct {
	ID        uint            `gorm:"primaryKey;column:emi_id" json:"emi_id"`
	LoanID    uint            `gorm:"index;not null" json:"loan_id"`
	EMINumber int             `gorm:"column:emi_number;not null" json:"emi_number"`
	DueDate   time.Time       `gorm:"type:date;not null" json:"due_date"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status    string          `gorm:"size:10;not null;default:'DUE'" json:"status"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (LoanEMI) TableName() string {
	return "loan_emi"
}

// EMI statuses
const (
	EMIStatusDue     = "DUE"
	EMIStatusPaid    = "PAID"
	EMIStatusOverdue = "OVERDUE"
)

// Transaction represents one leg of a balance change. Rows are
// append-only: never updated, never deleted. balance_after equals the
// account balance immediately after the mutation that produced the row.
type Transaction struct {
	ID             uint            `gorm:"primaryKey;column:tx_id" json:"tx_id"`
	ReferenceID    string          `gorm:"column:reference_id;type:char(36);uniqueIndex;not null" json:"reference_id"`
	AccountID      uint            `gorm:"index;not null" json:"account_id"`
	TxType         string          `gorm:"column:tx_type;size:12;not null" json:"tx_type"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceAfter   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	RelatedAccount *uint           `json:"related_account"`
	Description    string          `gorm:"size:255" json:"description"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Transaction types
const (
	TxTypeDeposit    = "DEPOSIT"
	TxTypeWithdrawal = "WITHDRAWAL"
	TxTypeDebit      = "DEBIT"
	TxTypeCredit     = "CREDIT"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates the banking tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Branch{},
		&Account{},
		&Employee{},
		&Card{},
		&Loan{},
		&LoanEMI{},
		&Transaction{},
	)
}
