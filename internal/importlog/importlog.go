package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/icabanken/internal/model"
)

// Entry is one row in the import log: a statement that was parsed.
type Entry struct {
	Timestamp      time.Time
	File           string
	Format         string
	Account        model.AccountNumber
	Transactions   int
	ClosingBalance *decimal.Decimal // nil when the statement had no rows
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,format,account,transactions,closing_balance"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "logs/import-log.csv"
	colTimestamp  = 0
	colFile       = 1
	colFormat     = 2
	colAccount    = 3
	colTxns       = 4
	colClosingBal = 5
)

// NewEntry summarizes a parsed statement.
func NewEntry(ts time.Time, format string, s *model.Statement) Entry {
	e := Entry{
		Timestamp:    ts,
		File:         s.FileName(),
		Format:       format,
		Account:      s.Account(),
		Transactions: s.Len(),
	}
	if bal, err := s.ClosingBalance(); err == nil {
		e.ClosingBalance = &bal
	}
	return e
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colAccount] = string(e.Account)
	row[colTxns] = strconv.Itoa(e.Transactions)
	if e.ClosingBalance != nil {
		row[colClosingBal] = e.ClosingBalance.StringFixed(2)
	}
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	n, err := strconv.Atoi(record[colTxns])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transactions %q: %w", record[colTxns], err)
	}

	var bal *decimal.Decimal
	if record[colClosingBal] != "" {
		d, err := decimal.NewFromString(record[colClosingBal])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing closing_balance %q: %w", record[colClosingBal], err)
		}
		bal = &d
	}

	return Entry{
		Timestamp:      ts,
		File:           record[colFile],
		Format:         record[colFormat],
		Account:        model.AccountNumber(record[colAccount]),
		Transactions:   n,
		ClosingBalance: bal,
	}, nil
}

// Append writes entries to <repoRoot>/logs/import-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/import-log.csv.
// Returns nil if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Imported reports whether a file of this name has already been logged.
func Imported(entries []Entry, file string) bool {
	for _, e := range entries {
		if e.File == file {
			return true
		}
	}
	return false
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
