package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/icabanken/internal/model"
)

// Variant selects which metadata lines precede the column header.
type Variant int

const (
	// WithPeriod expects a start-date and an end-date line after the account line.
	WithPeriod Variant = iota
	// WithoutPeriod expects the header directly after the account line.
	WithoutPeriod
)

func (v Variant) String() string {
	switch v {
	case WithPeriod:
		return "with-period"
	case WithoutPeriod:
		return "without-period"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant converts a config or flag value into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "with-period", "":
		return WithPeriod, nil
	case "without-period":
		return WithoutPeriod, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want with-period or without-period)", s)
	}
}

const (
	numFields   = 6
	delimiter   = ';'
	colDate     = 0
	colText     = 1
	colType     = 2
	colCategory = 3
	colAmount   = 4
	colBalance  = 5
)

// header lists the expected column names in file order.
var header = [numFields]string{"Datum", "Text", "Typ", "Budgetgrupp", "Belopp", "Saldo"}

// ParseStatement parses the full content of an ICA Banken export.
func ParseStatement(content string, variant Variant) (*model.Statement, error) {
	return parseStatement(content, variant, "")
}

// Identify reports whether content parses as an ICA Banken export of the
// given variant. It never returns an error.
func Identify(content string, variant Variant) bool {
	_, err := ParseStatement(content, variant)
	return err == nil
}

// ParseFile reads and parses the export at path. The file is closed before
// parsing starts.
func ParseFile(path string, variant Variant) (*model.Statement, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseStatement(content, variant, filepath.Base(path))
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	content, err := decode(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// decode reads r fully as UTF-8, dropping a leading byte order mark.
func decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseStatement(content string, variant Variant, fileName string) (*model.Statement, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	// \r\n, \n and bare \r all end a line.
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	// next returns the line at index i, or "" past the end of the file.
	next := func(i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}

	account, err := ValidateAccountNumber(next(0))
	if err != nil {
		return nil, &ParseError{Line: 1, Field: "account", Value: next(0), Err: err}
	}
	pos := 1

	var period *model.Period
	if variant == WithPeriod {
		start, err := ValidateDate(next(pos))
		if err != nil {
			return nil, &ParseError{Line: pos + 1, Field: "period start", Value: next(pos), Err: err}
		}
		end, err := ValidateDate(next(pos + 1))
		if err != nil {
			return nil, &ParseError{Line: pos + 2, Field: "period end", Value: next(pos + 1), Err: err}
		}
		period = &model.Period{Start: start, End: end}
		pos += 2
	}

	if pos >= len(lines) {
		return nil, &ParseError{Line: pos + 1, Field: "header", Err: fmt.Errorf("%w: missing", ErrInvalidHeader)}
	}
	if err := checkHeader(lines[pos]); err != nil {
		return nil, &ParseError{Line: pos + 1, Field: "header", Value: lines[pos], Err: err}
	}
	pos++

	var txns []model.Transaction
	for i := pos; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		txn, err := parseRow(lines[i], i+1)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return model.NewStatement(account, period, txns, fileName), nil
}

func checkHeader(line string) error {
	fields, err := splitRow(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if len(fields) != numFields {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrInvalidHeader, numFields, len(fields))
	}
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), name) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidHeader, i+1, fields[i], name)
		}
	}
	return nil
}

func parseRow(line string, lineNo int) (model.Transaction, error) {
	fields, err := splitRow(line)
	if err != nil {
		return model.Transaction{}, &ParseError{Line: lineNo, Field: "row", Value: line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
	}
	if len(fields) != numFields {
		return model.Transaction{}, &ParseError{
			Line:  lineNo,
			Field: "row",
			Value: line,
			Err:   fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, numFields, len(fields)),
		}
	}

	date, err := ValidateDate(fields[colDate])
	if err != nil {
		return model.Transaction{}, &ParseError{Line: lineNo, Field: header[colDate], Value: fields[colDate], Err: err}
	}
	amount, err := ValidateAmount(fields[colAmount])
	if err != nil {
		return model.Transaction{}, &ParseError{Line: lineNo, Field: header[colAmount], Value: fields[colAmount], Err: err}
	}
	balance, err := ValidateAmount(fields[colBalance])
	if err != nil {
		return model.Transaction{}, &ParseError{Line: lineNo, Field: header[colBalance], Value: fields[colBalance], Err: err}
	}

	return model.Transaction{
		Date:           date,
		Counterparty:   strings.TrimSpace(fields[colText]),
		Kind:           strings.TrimSpace(fields[colType]),
		Category:       strings.TrimSpace(fields[colCategory]),
		Amount:         amount,
		RunningBalance: balance,
	}, nil
}

// splitRow splits one line on the field delimiter.
func splitRow(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.Read()
}
