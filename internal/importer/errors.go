package importer

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; positional context is in *ParseError.
var (
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrMalformedRow         = errors.New("malformed row")
	ErrInvalidHeader        = errors.New("invalid header")
)

// ParseError locates a validation failure in the source file.
type ParseError struct {
	Line  int    // 1-based line number in the file
	Field string // column or metadata name
	Value string // raw value as read
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
