package sheetbind

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ParseError represents a structural failure that aborted a parse.
type ParseError struct {
	SheetName string
	Stage     string // "open", "sheet", "parse"
	Err       error
}

func (e *ParseError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("parse error (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("parse error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(sheetName, stage string, err error) *ParseError {
	return &ParseError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
