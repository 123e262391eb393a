// Package format holds the stateless presentation helpers used by API
// consumers and the statement exporter: money and date formatting,
// status badge lookup, and card number masking.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money renders an amount with Indian digit grouping and two decimal
// places, e.g. 1234567.5 -> "12,34,567.50".
func Money(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// MoneyWithCurrency prefixes the grouped amount with its currency code,
// e.g. "INR 25,000.00".
func MoneyWithCurrency(amount decimal.Decimal, currency string) string {
	return currency + " " + Money(amount)
}

// groupIndian inserts separators in the Indian style: the last three
// digits form one group, all preceding digits group in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

// Date renders a date as "02 Jan 2006".
func Date(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// DateTime renders a timestamp as "02 Jan 2006 15:04".
func DateTime(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}

// badgeClasses maps entity status strings to css badge classes.
var badgeClasses = map[string]string{
	"PENDING":    "badge-warning",
	"APPROVED":   "badge-success",
	"REJECTED":   "badge-danger",
	"Active":     "badge-success",
	"Blocked":    "badge-danger",
	"Expired":    "badge-secondary",
	"On Leave":   "badge-warning",
	"Resigned":   "badge-secondary",
	"DUE":        "badge-warning",
	"PAID":       "badge-success",
	"OVERDUE":    "badge-danger",
	"DEPOSIT":    "badge-success",
	"CREDIT":     "badge-success",
	"WITHDRAWAL": "badge-danger",
	"DEBIT":      "badge-danger",
}

// BadgeClass returns the css badge class for a status string, falling
// back to a neutral badge for unknown statuses.
func BadgeClass(status string) string {
	if class, ok := badgeClasses[status]; ok {
		return class
	}
	return "badge-secondary"
}

// MaskCardNumber hides all but the last four digits of a PAN.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
