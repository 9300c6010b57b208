// Package sheet defines the tabular grid capability the mapper reads from and
// writes to, independent of any file format.
package sheet

import (
	"errors"
	"io"
)

// ErrOutOfRange indicates a row or column outside the addressable grid.
var ErrOutOfRange = errors.New("cell coordinates out of range")

// CellType is the value-type tag attached to a written cell.
type CellType int

const (
	// CellText stores the value as a string.
	CellText CellType = iota
	// CellNumber stores the value as a number.
	CellNumber
	// CellBool stores the value as a boolean.
	CellBool
	// CellTime stores a temporal value.
	CellTime
)

func (t CellType) String() string {
	switch t {
	case CellNumber:
		return "number"
	case CellBool:
		return "boolean"
	case CellTime:
		return "temporal"
	default:
		return "text"
	}
}

// Style is the visual tag of a cell or row.
type Style int

const (
	// StyleNeutral clears any highlight.
	StyleNeutral Style = iota
	// StyleFlagged highlights a cell or row that failed to parse or validate.
	StyleFlagged
	// StyleHeader marks a column header (bold, single underline).
	StyleHeader
)

// Sheet is a two-dimensional grid of cells. Rows and columns are 1-based.
// A cell is "used" when its text is non-empty.
type Sheet interface {
	// Name returns the sheet name.
	Name() string
	// UsedRows returns the first and last used row numbers.
	// ok is false when the sheet has no used cell.
	UsedRows() (first, last int, ok bool)
	// UsedColumns returns the first and last used column of row.
	// ok is false when the row has no used cell.
	UsedColumns(row int) (first, last int, ok bool)
	// CellText returns the text of a cell, or "" for an empty cell.
	CellText(row, col int) (string, error)
	// SetCell writes text into a cell and tags it with typ.
	SetCell(row, col int, text string, typ CellType) error
	// SetCellStyle sets the visual tag of one cell.
	SetCellStyle(row, col int, st Style) error
	// SetRowStyle sets the visual tag of a whole row, including its existing cells.
	SetRowStyle(row int, st Style) error
}

// Workbook is a closeable container of sheets.
type Workbook interface {
	io.Closer
	// NewSheet creates an empty sheet with the given name.
	NewSheet(name string) (Sheet, error)
	// SheetAt returns the sheet at a 0-based position.
	SheetAt(index int) (Sheet, error)
	// SheetByName returns the named sheet.
	SheetByName(name string) (Sheet, error)
	// SheetNames lists the sheets in workbook order.
	SheetNames() []string
}
