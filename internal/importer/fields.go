package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/icabanken/internal/model"
)

const dateFormat = "2006-01-02"

var (
	accountPattern = regexp.MustCompile(`^\d{4}-\d{3} \d{3} \d$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// -1 192,75 kr
	amountPattern = regexp.MustCompile(`^-?\d{1,3}( \d{3})*,\d{2} ?kr$`)
)

// ValidateAccountNumber trims raw and checks it against NNNN-NNN NNN N.
func ValidateAccountNumber(raw string) (model.AccountNumber, error) {
	s := strings.TrimSpace(raw)
	if !accountPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountNumber, raw)
	}
	return model.AccountNumber(s), nil
}

// ValidateDate parses a trimmed YYYY-MM-DD date. Impossible calendar dates
// such as 2023-02-30 are rejected.
func ValidateDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, raw, err)
	}
	return d, nil
}

// ValidateAmount parses Swedish currency text like "-1 192,75 kr" into an
// exact decimal. Used for both the Belopp and Saldo columns.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	s = strings.TrimSuffix(s, "kr")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, raw, err)
	}
	return d, nil
}
