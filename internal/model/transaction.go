package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountNumber is a validated ICA Banken account number, e.g. "9274-123 456 7".
type AccountNumber string

// Transaction represents one parsed statement row.
type Transaction struct {
	Date           time.Time
	Counterparty   string          // "Text" column
	Kind           string          // "Typ" column, e.g. Korttransaktion
	Category       string          // "Budgetgrupp" column
	Amount         decimal.Decimal // negative = withdrawal, positive = deposit
	RunningBalance decimal.Decimal // "Saldo" column as reported by the bank
}
