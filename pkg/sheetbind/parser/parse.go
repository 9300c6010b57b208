// Package parser maps sheet rows onto records: it binds header columns to
// schema fields, coerces every cell, runs record validation and annotates
// the sheet with the outcome.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/models"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
)

// Validator checks a fully parsed record and returns one message per
// problem. It is only called for records whose cells all parsed.
type Validator[T any] func(rec T) []string

// Config holds parameters for ParseSheet.
type Config struct {
	// TimeLayout is the layout for temporal cells, used when Engine is nil.
	TimeLayout string
	// Engine coerces cell text. If nil, a default engine is built.
	Engine *coerce.Engine
	// SkipBlankRows skips rows with no used cell instead of parsing them.
	// Skipped rows are not counted.
	SkipBlankRows bool
	// Annotator writes feedback into the sheet. If nil, DefaultAnnotator is used.
	Annotator Annotator
	// Logger receives debug output. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultConfig returns the default parse configuration.
func DefaultConfig() Config {
	return Config{
		TimeLayout: coerce.DefaultTimeLayout,
		Annotator:  DefaultAnnotator{},
	}
}

// ParseSheet parses every data row of sh into a record of type T. The first
// used row is the header; data rows run through the last used row.
//
// Structural problems (no sheet, no header, missing or ambiguous columns)
// are returned as errors before any row is touched. Row problems are not
// errors: the row is flagged in the sheet, left out of Valid and described
// in Invalid.
func ParseSheet[T any](sh sheet.Sheet, s *schema.Schema[T], validate Validator[T], cfg Config) (*models.SheetResult[T], error) {
	if sh == nil {
		return nil, ErrNilSheet
	}
	if s == nil {
		return nil, ErrNilSchema
	}
	engine := cfg.Engine
	if engine == nil {
		engine = coerce.New(cfg.TimeLayout)
	}
	ann := cfg.Annotator
	if ann == nil {
		ann = DefaultAnnotator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	headerRow, lastRow, ok := sh.UsedRows()
	if !ok {
		return nil, ErrEmptySheet
	}
	bindings, err := BuildBindings(s, sh, headerRow, engine)
	if err != nil {
		return nil, err
	}
	logger.Debug("bound columns", "sheet", sh.Name(), "header_row", headerRow, "fields", len(bindings))

	boundCol := 0
	for _, b := range bindings {
		boundCol = max(boundCol, b.Column)
	}

	result := &models.SheetResult[T]{SheetName: sh.Name()}
	for row := headerRow + 1; row <= lastRow; row++ {
		if cfg.SkipBlankRows {
			if _, _, used := sh.UsedColumns(row); !used {
				continue
			}
		}
		result.TotalRecordCount++

		rec, diag, err := parseRow(sh, row, s, bindings, ann)
		if err != nil {
			return nil, err
		}
		if len(diag.Messages) == 0 && validate != nil {
			diag.Messages = append(diag.Messages, validate(rec)...)
		}

		valid := len(diag.Messages) == 0
		if valid {
			result.Valid = append(result.Valid, rec)
		} else {
			result.Invalid = append(result.Invalid, diag)
			logger.Debug("row rejected", "sheet", sh.Name(), "row", row, "messages", diag.Messages)
		}

		if err := ann.MarkRow(sh, row, valid, diag.Messages, boundCol); err != nil {
			return nil, &CellError{Row: row, Op: "annotate", Err: err}
		}
	}

	logger.Debug("sheet parsed", "sheet", sh.Name(),
		"total", result.TotalRecordCount, "valid", len(result.Valid))
	return result, nil
}

// parseRow coerces every bound cell of row into a new record and marks each
// cell. Every failing field is reported, not just the first.
func parseRow[T any](sh sheet.Sheet, row int, s *schema.Schema[T], bindings []Binding[T], ann Annotator) (T, models.RowDiagnostic, error) {
	rec := s.NewRecord()
	diag := models.RowDiagnostic{Row: row}

	for _, b := range bindings {
		raw, err := sh.CellText(row, b.Column)
		if err != nil {
			return rec, diag, &CellError{Row: row, Column: b.Column, Op: "read", Err: err}
		}
		v, ok := b.Parse(raw)
		if ok {
			b.Field.Set(&rec, v)
		} else {
			diag.Messages = append(diag.Messages, fmt.Sprintf("%s did not parse.", b.Field.Name()))
			diag.Columns = append(diag.Columns, b.Column)
		}
		if err := ann.MarkCell(sh, row, b.Column, ok); err != nil {
			return rec, diag, &CellError{Row: row, Column: b.Column, Op: "annotate", Err: err}
		}
	}
	return rec, diag, nil
}
