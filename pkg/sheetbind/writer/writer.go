// Package writer serializes records into a sheet: one header row of resolved
// column names followed by one row per record.
package writer

import (
	"fmt"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
)

// HeaderRow is the row the header is written to.
const HeaderRow = 1

// WriteTable writes the header and one row per record into sh, starting at
// A1. An empty records slice produces a header-only table.
func WriteTable[T any](sh sheet.Sheet, s *schema.Schema[T], records []T, engine *coerce.Engine) error {
	if engine == nil {
		engine = coerce.New("")
	}
	fields := readable(s)
	if err := writeHeader(sh, s, fields); err != nil {
		return err
	}

	for i := range records {
		row := HeaderRow + 1 + i
		for j, f := range fields {
			col := j + 1
			typ := f.Type()
			text := engine.RenderField(typ, f.Get(&records[i]))
			if err := sh.SetCell(row, col, text, coerce.CellTypeOf(typ)); err != nil {
				return fmt.Errorf("write row %d, column %d: %w", row, col, err)
			}
		}
	}
	return nil
}

// WriteTemplate writes only the header row of s into sh.
func WriteTemplate[T any](sh sheet.Sheet, s *schema.Schema[T]) error {
	return writeHeader(sh, s, readable(s))
}

func writeHeader[T any](sh sheet.Sheet, s *schema.Schema[T], fields []schema.Field[T]) error {
	for i, f := range fields {
		col := i + 1
		if err := sh.SetCell(HeaderRow, col, s.ColumnName(f), sheet.CellText); err != nil {
			return fmt.Errorf("write header column %d: %w", col, err)
		}
		if err := sh.SetCellStyle(HeaderRow, col, sheet.StyleHeader); err != nil {
			return fmt.Errorf("style header column %d: %w", col, err)
		}
	}
	return nil
}

func readable[T any](s *schema.Schema[T]) []schema.Field[T] {
	var fields []schema.Field[T]
	for _, f := range s.Fields() {
		if f.Readable() {
			fields = append(fields, f)
		}
	}
	return fields
}
