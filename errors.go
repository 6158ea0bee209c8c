package statement

import (
	"errors"
	"fmt"
)

// Errors returned by the statement engine. Every failure aborts the whole run,
// use errors.Is to tell them apart.
var (
	// ErrExtractionFailure is returned when the text of a document could not be extracted.
	ErrExtractionFailure = errors.New("text extraction failed")
	// ErrSegmentationAmbiguity is returned when an account section cannot be classified or named.
	ErrSegmentationAmbiguity = errors.New("ambiguous account section")
	// ErrRowFormatMismatch is returned when a table row does not match its layout, even after
	// joining it with the following line.
	ErrRowFormatMismatch = errors.New("row format mismatch")
	// ErrMissingRequiredField is returned when an account lacks a balance it needs.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrUnknownLayout is returned when a layout revision is requested by an unknown name.
	ErrUnknownLayout = errors.New("unknown layout")
)

// RowError locates a line that could not be parsed in a table.
type RowError struct {
	Account string // Account is the display name of the account owning the table.
	Table   string // Table is the kind of table being parsed ("holdings", "dividends", ...).
	Line    int    // Line is the index of the offending line in the account buffer.
	Text    string // Text is the offending line, joined with its predecessor if it was retried.
	Reason  string
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("%v: account %q, %s table, line %d: %q", ErrRowFormatMismatch, e.Account, e.Table, e.Line, e.Text)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *RowError) Unwrap() error { return ErrRowFormatMismatch }

// AccountError reports an account level failure: a missing balance or an account
// that cannot be identified.
type AccountError struct {
	Account string
	Field   string
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("%v: account %q: %s", e.Err, e.Account, e.Field)
}

func (e *AccountError) Unwrap() error { return e.Err }
