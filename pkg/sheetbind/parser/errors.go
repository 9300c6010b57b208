package parser

import (
	"errors"
	"fmt"
)

// ErrNilSheet indicates ParseSheet was called without a sheet.
var ErrNilSheet = errors.New("sheet is nil")

// ErrNilSchema indicates a parse or write was called without a schema.
var ErrNilSchema = errors.New("schema is nil")

// ErrEmptySheet indicates the sheet has no header row.
var ErrEmptySheet = errors.New("sheet has no header row")

// MissingColumnError reports a writable field with no matching header cell.
type MissingColumnError struct {
	Field  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet did not provide required column %q (field %s)", e.Column, e.Field)
}

// AmbiguousColumnError reports a display name matched by more than one
// header cell.
type AmbiguousColumnError struct {
	Field   string
	Column  string
	Columns []int
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("column %q (field %s) appears more than once in the header, at columns %v",
		e.Column, e.Field, e.Columns)
}

// CellError wraps a failure of the underlying sheet while reading or
// annotating a cell.
type CellError struct {
	Row    int
	Column int
	Op     string
	Err    error
}

func (e *CellError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s row %d, column %d: %v", e.Op, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("%s row %d: %v", e.Op, e.Row, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
