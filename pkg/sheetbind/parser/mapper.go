package parser

import (
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
)

// Binding ties a field to the sheet column holding its values. Bindings are
// built for a single operation and not reused.
type Binding[T any] struct {
	Field schema.Field[T]
	// Column is the 1-based column of the matched header cell.
	Column int
	// Header is the resolved display name that matched.
	Header string
	parse  func(raw string) (any, bool)
}

// Parse coerces raw cell text for the bound field.
func (b Binding[T]) Parse(raw string) (any, bool) {
	return b.parse(raw)
}

// BuildBindings matches every readable and writable field of s against the
// header cells of headerRow, case-insensitively. Headers may appear in any
// order and unmapped header cells are ignored. A field without exactly one
// matching header cell is a structural error.
func BuildBindings[T any](s *schema.Schema[T], sh sheet.Sheet, headerRow int, engine *coerce.Engine) ([]Binding[T], error) {
	first, last, ok := sh.UsedColumns(headerRow)
	if !ok {
		return nil, ErrEmptySheet
	}

	headers := make(map[string][]int)
	for col := first; col <= last; col++ {
		text, err := sh.CellText(headerRow, col)
		if err != nil {
			return nil, &CellError{Row: headerRow, Column: col, Op: "read header", Err: err}
		}
		if text == "" {
			continue
		}
		key := schema.Fold(text)
		headers[key] = append(headers[key], col)
	}

	var bindings []Binding[T]
	for _, f := range s.Fields() {
		if !f.Readable() || !f.Writable() {
			continue
		}
		name := s.ColumnName(f)
		cols := headers[schema.Fold(name)]
		switch len(cols) {
		case 0:
			return nil, &MissingColumnError{Field: f.Name(), Column: name}
		case 1:
		default:
			return nil, &AmbiguousColumnError{Field: f.Name(), Column: name, Columns: cols}
		}
		typ := f.Type()
		bindings = append(bindings, Binding[T]{
			Field:  f,
			Column: cols[0],
			Header: name,
			parse: func(raw string) (any, bool) {
				return engine.Coerce(typ, raw)
			},
		})
	}
	return bindings, nil
}
