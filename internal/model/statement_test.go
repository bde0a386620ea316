package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestStatement_ClosingBalance(t *testing.T) {
	txns := []Transaction{
		{Date: date(2023, 10, 1), Amount: dec("-192.75"), RunningBalance: dec("-19961.17")},
		{Date: date(2023, 10, 1), Amount: dec("-10.00"), RunningBalance: dec("-19768.42")},
		{Date: date(2023, 9, 28), Amount: dec("-96.00"), RunningBalance: dec("-19758.42")},
	}
	s := NewStatement("9274-123 456 7", nil, txns, "t.csv")

	bal, err := s.ClosingBalance()
	require.NoError(t, err)
	assert.Equal(t, "-19758.42", bal.StringFixed(2))
	assert.Equal(t, "-298.75", s.Sum().StringFixed(2))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "t.csv", s.FileName())
}

func TestStatement_Empty(t *testing.T) {
	s := NewStatement("9274-123 456 7", nil, nil, "")

	_, err := s.ClosingBalance()
	assert.ErrorIs(t, err, ErrEmptyStatement)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Transactions())
	assert.True(t, s.Sum().IsZero())
}

func TestStatement_Period(t *testing.T) {
	s := NewStatement("9274-123 456 7", nil, nil, "")
	_, ok := s.PeriodStart()
	assert.False(t, ok)
	_, ok = s.PeriodEnd()
	assert.False(t, ok)

	s = NewStatement("9274-123 456 7", &Period{Start: date(2023, 9, 1), End: date(2023, 9, 30)}, nil, "")
	start, ok := s.PeriodStart()
	require.True(t, ok)
	assert.Equal(t, date(2023, 9, 1), start)
	end, ok := s.PeriodEnd()
	require.True(t, ok)
	assert.Equal(t, date(2023, 9, 30), end)
}

func TestStatement_Immutable(t *testing.T) {
	txns := []Transaction{{Counterparty: "Convini", Amount: dec("-25.00")}}
	s := NewStatement("9274-123 456 7", nil, txns, "")

	// Mutating the input or the returned copy must not leak into the statement.
	txns[0].Counterparty = "changed"
	got := s.Transactions()
	got[0].Amount = dec("1000")

	again := s.Transactions()
	assert.Equal(t, "Convini", again[0].Counterparty)
	assert.Equal(t, "-25.00", again[0].Amount.StringFixed(2))
}
