package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyStatement is returned when a closing balance is requested from a
// statement without transactions.
var ErrEmptyStatement = errors.New("statement has no transactions")

// Statement is one parsed export file. It is read-only once constructed.
type Statement struct {
	account      AccountNumber
	periodStart  time.Time
	periodEnd    time.Time
	hasPeriod    bool
	transactions []Transaction
	fileName     string
}

// Period is the optional statement period found in the file header.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewStatement builds a Statement. period may be nil when the source format
// carries no period lines. The transaction slice is copied.
func NewStatement(account AccountNumber, period *Period, txns []Transaction, fileName string) *Statement {
	s := &Statement{
		account:      account,
		transactions: append([]Transaction(nil), txns...),
		fileName:     fileName,
	}
	if period != nil {
		s.periodStart = period.Start
		s.periodEnd = period.End
		s.hasPeriod = true
	}
	return s
}

// Account returns the statement's account number.
func (s *Statement) Account() AccountNumber { return s.account }

// PeriodStart returns the first day of the statement period, if present.
func (s *Statement) PeriodStart() (time.Time, bool) { return s.periodStart, s.hasPeriod }

// PeriodEnd returns the last day of the statement period, if present.
func (s *Statement) PeriodEnd() (time.Time, bool) { return s.periodEnd, s.hasPeriod }

// FileName returns the name of the file the statement was read from, or "".
func (s *Statement) FileName() string { return s.fileName }

// Len returns the number of transactions.
func (s *Statement) Len() int { return len(s.transactions) }

// Transactions returns a copy of the transactions in file order.
func (s *Statement) Transactions() []Transaction {
	return append([]Transaction(nil), s.transactions...)
}

// ClosingBalance returns the running balance of the last transaction in file
// order. The bank lists newest first, so this is not necessarily the latest
// date.
func (s *Statement) ClosingBalance() (decimal.Decimal, error) {
	if len(s.transactions) == 0 {
		return decimal.Zero, ErrEmptyStatement
	}
	return s.transactions[len(s.transactions)-1].RunningBalance, nil
}

// Sum returns the total of all transaction amounts.
func (s *Statement) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.transactions {
		total = total.Add(t.Amount)
	}
	return total
}
