package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CardService handles card issuance and lifecycle
type CardService struct {
	cardRepo    repositories.CardRepository
	accountRepo repositories.AccountRepository
}

// NewCardService creates a new card service
func NewCardService(cardRepo repositories.CardRepository, accountRepo repositories.AccountRepository) *CardService {
	return &CardService{cardRepo: cardRepo, accountRepo: accountRepo}
}

// IssueCardInput carries an employee's card issuance request. Exactly
// one of CreditLimit or WithdrawalLimit must be set, matching the card
// type.
type IssueCardInput struct {
	AccountID       uint
	CardType        string
	CreditLimit     *decimal.Decimal
	WithdrawalLimit *decimal.Decimal
}

// Issue creates a new Active card with a generated number, CVV and a
// four year expiry.
func (s *CardService) Issue(ctx context.Context, input IssueCardInput) (*models.Card, error) {
	if err := validateCardLimits(input); err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	// Regenerate on a card number collision; three tries is plenty for
	// a 16 digit space.
	for attempt := 0; attempt < 3; attempt++ {
		number, err := randomDigits(16)
		if err != nil {
			return nil, err
		}
		cvv, err := randomDigits(3)
		if err != nil {
			return nil, err
		}

		card := &models.Card{
			AccountID:       input.AccountID,
			CardNumber:      number,
			CardType:        input.CardType,
			ExpiryDate:      time.Now().AddDate(4, 0, 0),
			CVV:             cvv,
			Status:          models.CardStatusActive,
			CreditLimit:     input.CreditLimit,
			WithdrawalLimit: input.WithdrawalLimit,
		}

		err = s.cardRepo.Create(ctx, card)
		if errors.Is(err, domain.ErrDuplicateEntry) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return card, nil
	}
	return nil, fmt.Errorf("failed to generate a unique card number")
}

// CustomerCards returns all cards across a customer's accounts
func (s *CardService) CustomerCards(ctx context.Context, customerID uint) ([]*models.Card, error) {
	return s.cardRepo.ListByCustomer(ctx, customerID)
}

// BranchCards returns all cards issued against a branch's accounts
func (s *CardService) BranchCards(ctx context.Context, branchID uint) ([]*models.Card, error) {
	return s.cardRepo.ListByBranch(ctx, branchID)
}

// Block moves an Active card to Blocked. Blocking an already blocked
// or expired card is rejected.
func (s *CardService) Block(ctx context.Context, cardID uint) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.Status != models.CardStatusActive {
		return nil, domain.ErrCardNotActive
	}

	if err := s.cardRepo.UpdateStatus(ctx, cardID, models.CardStatusBlocked); err != nil {
		return nil, err
	}
	card.Status = models.CardStatusBlocked
	return card, nil
}

// validateCardLimits enforces the type/limit pairing: Credit cards
// carry a credit limit only, Debit cards a withdrawal limit only.
func validateCardLimits(input IssueCardInput) error {
	switch input.CardType {
	case models.CardTypeCredit:
		if input.CreditLimit == nil || input.WithdrawalLimit != nil {
			return domain.ErrCardLimitConflict
		}
		if !input.CreditLimit.IsPositive() {
			return domain.ErrInvalidInput
		}
	case models.CardTypeDebit:
		if input.WithdrawalLimit == nil || input.CreditLimit != nil {
			return domain.ErrCardLimitConflict
		}
		if !input.WithdrawalLimit.IsPositive() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// randomDigits returns n cryptographically random decimal digits
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
