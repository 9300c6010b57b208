package sheetbind

import (
	"errors"
	"io"
	"os"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/models"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/parser"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/xlsx"
)

// ExcelParseResult is the outcome of parsing a workbook. It owns the opened
// workbook, annotated with parse feedback, until Close is called.
type ExcelParseResult[T any] struct {
	models.SheetResult[T]
	Workbook *xlsx.Workbook
}

// Close releases the workbook.
func (r *ExcelParseResult[T]) Close() error {
	if r == nil || r.Workbook == nil {
		return nil
	}
	return r.Workbook.Close()
}

// ParseExcel reads an xlsx workbook from r and parses one sheet into records
// of type T. validate may be nil.
func ParseExcel[T any](r io.Reader, s *schema.Schema[T], validate parser.Validator[T], opts Options) (*ExcelParseResult[T], error) {
	if s == nil {
		return nil, NewParseError("", "parse", parser.ErrNilSchema)
	}
	wb, err := xlsx.Open(r)
	if err != nil {
		return nil, NewParseError("", "open", errors.Join(ErrInvalidFormat, err))
	}

	res, err := parseWorkbook(wb, s, validate, opts)
	if err != nil {
		wb.Close()
		return nil, err
	}
	return res, nil
}

// ParseFile opens the workbook at path and parses it like ParseExcel.
func ParseFile[T any](path string, s *schema.Schema[T], validate parser.Validator[T], opts Options) (*ExcelParseResult[T], error) {
	if s == nil {
		return nil, NewParseError("", "parse", parser.ErrNilSchema)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewParseError("", "open", errors.Join(ErrFileNotFound, err))
		}
		return nil, NewParseError("", "open", err)
	}
	defer f.Close()

	return ParseExcel(f, s, validate, opts)
}

func parseWorkbook[T any](wb *xlsx.Workbook, s *schema.Schema[T], validate parser.Validator[T], opts Options) (*ExcelParseResult[T], error) {
	var (
		sh  sheet.Sheet
		err error
	)
	if opts.SheetName != "" {
		sh, err = wb.SheetByName(opts.SheetName)
	} else {
		sh, err = wb.SheetAt(0)
	}
	if err != nil {
		return nil, NewParseError(opts.SheetName, "sheet", err)
	}

	opts.logger().Debug("parsing sheet", "sheet", sh.Name(), "schema", s.Name())
	sheetResult, err := parser.ParseSheet(sh, s, validate, opts.parserConfig())
	if err != nil {
		return nil, NewParseError(sh.Name(), "parse", err)
	}

	return &ExcelParseResult[T]{
		SheetResult: *sheetResult,
		Workbook:    wb,
	}, nil
}
