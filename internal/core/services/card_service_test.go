package services

import (
	"testing"

	"bankdesk/internal/adapters/persistence/models"
	"bankdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestValidateCardLimits(t *testing.T) {
	tests := []struct {
		name  string
		input IssueCardInput
		want  error
	}{
		{
			"credit with credit limit",
			IssueCardInput{CardType: models.CardTypeCredit, CreditLimit: limit("50000")},
			nil,
		},
		{
			"debit with withdrawal limit",
			IssueCardInput{CardType: models.CardTypeDebit, WithdrawalLimit: limit("25000")},
			nil,
		},
		{
			"credit missing limit",
			IssueCardInput{CardType: models.CardTypeCredit},
			domain.ErrCardLimitConflict,
		},
		{
			"debit missing limit",
			IssueCardInput{CardType: models.CardTypeDebit},
			domain.ErrCardLimitConflict,
		},
		{
			"credit with both limits",
			IssueCardInput{CardType: models.CardTypeCredit, CreditLimit: limit("50000"), WithdrawalLimit: limit("25000")},
			domain.ErrCardLimitConflict,
		},
		{
			"debit with credit limit",
			IssueCardInput{CardType: models.CardTypeDebit, CreditLimit: limit("50000")},
			domain.ErrCardLimitConflict,
		},
		{
			"credit with zero limit",
			IssueCardInput{CardType: models.CardTypeCredit, CreditLimit: limit("0")},
			domain.ErrInvalidInput,
		},
		{
			"unknown card type",
			IssueCardInput{CardType: "Prepaid", CreditLimit: limit("1000")},
			domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCardLimits(tt.input)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRandomDigits(t *testing.T) {
	for _, n := range []int{3, 16} {
		s, err := randomDigits(n)
		require.NoError(t, err)
		require.Len(t, s, n)
		for _, r := range s {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q in %s", r, s)
		}
	}
}
