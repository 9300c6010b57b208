package sheetbind

import (
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/parser"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/writer"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/xlsx"
)

// ListToExcel writes records into a new workbook with a single sheet named
// "ListOf<schema name>", cut to the 31 characters xlsx allows. The caller owns the returned workbook.
func ListToExcel[T any](records []T, s *schema.Schema[T], opts Options) (*xlsx.Workbook, error) {
	if s == nil {
		return nil, parser.ErrNilSchema
	}
	wb := xlsx.New()
	sh, err := wb.NewSheet(sheetTitle("ListOf" + s.Name()))
	if err != nil {
		wb.Close()
		return nil, err
	}
	if err := writer.WriteTable(sh, s, records, opts.engine()); err != nil {
		wb.Close()
		return nil, err
	}
	opts.logger().Debug("wrote records", "sheet", sh.Name(), "records", len(records))
	return wb, nil
}

// BuildTemplate returns a new workbook with a sheet named
// "<schema name>Template" holding only the header row.
func BuildTemplate[T any](s *schema.Schema[T]) (*xlsx.Workbook, error) {
	if s == nil {
		return nil, parser.ErrNilSchema
	}
	wb := xlsx.New()
	sh, err := wb.NewSheet(sheetTitle(s.Name() + "Template"))
	if err != nil {
		wb.Close()
		return nil, err
	}
	if err := writer.WriteTemplate(sh, s); err != nil {
		wb.Close()
		return nil, err
	}
	return wb, nil
}

// maxSheetName is the longest sheet name xlsx allows.
const maxSheetName = 31

func sheetTitle(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}
