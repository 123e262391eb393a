package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"25000", "25,000.00"},
		{"100000", "1,00,000.00"},
		{"1234567.5", "12,34,567.50"},
		{"12345678.9", "1,23,45,678.90"},
		{"-52000", "-52,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(d(tt.in)), "input %s", tt.in)
	}
}

func TestMoneyWithCurrency(t *testing.T) {
	assert.Equal(t, "INR 25,000.00", MoneyWithCurrency(d("25000"), "INR"))
}

func TestDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "07 Mar 2025", Date(ts))
	assert.Equal(t, "07 Mar 2025 14:30", DateTime(ts))
}

func TestBadgeClass(t *testing.T) {
	assert.Equal(t, "badge-warning", BadgeClass("PENDING"))
	assert.Equal(t, "badge-success", BadgeClass("APPROVED"))
	assert.Equal(t, "badge-danger", BadgeClass("OVERDUE"))
	assert.Equal(t, "badge-secondary", BadgeClass("something else"))
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "************5678", MaskCardNumber("4012888812345678"))
	assert.Equal(t, "123", MaskCardNumber("123"))
}
