// Package sheetbind maps typed records to and from xlsx sheets.
//
// ListToExcel and BuildTemplate write records or an empty labeled table.
// ParseExcel and ParseFile read the first (or named) sheet back into
// records, flag every row that fails to parse or validate, and hand the
// annotated workbook to the caller.
package sheetbind

import (
	"log/slog"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/parser"
)

// Options configures parse and write behavior.
type Options struct {
	// SheetName selects the sheet to parse. Empty selects the first sheet.
	SheetName string
	// TimeLayout is the layout for temporal cells. Empty selects coerce.DefaultTimeLayout.
	TimeLayout string
	// SkipBlankRows specifies whether rows without any used cell are skipped.
	// If nil, defaults to false: blank rows are parsed and counted.
	SkipBlankRows *bool
	// Annotator overrides how parse feedback is written into the sheet.
	Annotator parser.Annotator
	// Logger receives debug output. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		TimeLayout: coerce.DefaultTimeLayout,
	}
}

// ShouldSkipBlankRows returns whether blank rows are skipped.
func (o Options) ShouldSkipBlankRows() bool {
	if o.SkipBlankRows != nil {
		return *o.SkipBlankRows
	}
	return false
}

func (o Options) engine() *coerce.Engine {
	return coerce.New(o.TimeLayout)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) parserConfig() parser.Config {
	cfg := parser.DefaultConfig()
	cfg.Engine = o.engine()
	cfg.SkipBlankRows = o.ShouldSkipBlankRows()
	if o.Annotator != nil {
		cfg.Annotator = o.Annotator
	}
	cfg.Logger = o.logger()
	return cfg
}
