package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"bankdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStatementCSV(t *testing.T) {
	svc := &CustomerService{}
	related := uint(2)
	rows := []*models.Transaction{
		{
			ID:           1,
			AccountID:    1,
			TxType:       models.TxTypeDeposit,
			Amount:       d("25000.00"),
			BalanceAfter: d("25000.00"),
			Description:  "Opening balance",
			CreatedAt:    time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:             2,
			AccountID:      1,
			TxType:         models.TxTypeDebit,
			Amount:         d("5000.00"),
			BalanceAfter:   d("20000.00"),
			RelatedAccount: &related,
			Description:    "Rent",
			CreatedAt:      time.Date(2025, time.February, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteStatementCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Tx ID,Date,Type,Amount,Balance After,Related Account,Description", lines[0])
	assert.Equal(t, "1,15 Jan 2025 10:00,DEPOSIT,25000.00,25000.00,,Opening balance", lines[1])
	assert.Equal(t, "2,01 Feb 2025 09:30,DEBIT,5000.00,20000.00,2,Rent", lines[2])
}

func TestWriteStatementCSVEmpty(t *testing.T) {
	svc := &CustomerService{}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteStatementCSV(&buf, nil))
	assert.Equal(t, "Tx ID,Date,Type,Amount,Balance After,Related Account,Description\n", buf.String())
}
