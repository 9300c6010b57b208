// Package xlsx implements the sheet capability on top of excelize workbooks.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates a sheet lookup by name or index failed.
var ErrSheetNotFound = errors.New("sheet not found")

// FlaggedColor is the fill color of flagged cells and rows (salmon).
const FlaggedColor = "FA8072"

// Workbook wraps an excelize file. It owns the file until Close is called.
type Workbook struct {
	f *excelize.File
	// fresh is true while the only sheet is the untouched default of NewFile.
	fresh  bool
	styles map[sheet.Style]int
}

var _ sheet.Workbook = (*Workbook)(nil)

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{f: excelize.NewFile(), fresh: true}
}

// Open reads a workbook from r.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

// OpenFile opens the workbook at path.
func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{f: f}, nil
}

// File exposes the underlying excelize file.
func (w *Workbook) File() *excelize.File { return w.f }

// Close releases the workbook.
func (w *Workbook) Close() error { return w.f.Close() }

// Write serializes the workbook as xlsx to out.
func (w *Workbook) Write(out io.Writer) error {
	return w.f.Write(out)
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	return w.f.SaveAs(path)
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// NewSheet adds an empty sheet. The default sheet of a new workbook is renamed
// rather than left behind empty.
func (w *Workbook) NewSheet(name string) (sheet.Sheet, error) {
	if w.fresh {
		w.fresh = false
		if list := w.f.GetSheetList(); len(list) == 1 {
			if err := w.f.SetSheetName(list[0], name); err != nil {
				return nil, err
			}
			return w.sheet(name), nil
		}
	}
	idx, err := w.f.NewSheet(name)
	if err != nil {
		return nil, err
	}
	w.f.SetActiveSheet(idx)
	return w.sheet(name), nil
}

// SheetAt returns the sheet at a 0-based position.
func (w *Workbook) SheetAt(index int) (sheet.Sheet, error) {
	list := w.f.GetSheetList()
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: index %d", ErrSheetNotFound, index)
	}
	return w.sheet(list[index]), nil
}

// SheetByName returns the named sheet.
func (w *Workbook) SheetByName(name string) (sheet.Sheet, error) {
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return w.sheet(name), nil
}

func (w *Workbook) sheet(name string) *Sheet {
	return &Sheet{wb: w, name: name}
}

// styleID returns the excelize style for st, creating it on first use.
func (w *Workbook) styleID(st sheet.Style) (int, error) {
	if st == sheet.StyleNeutral {
		return 0, nil
	}
	if id, ok := w.styles[st]; ok {
		return id, nil
	}
	var def *excelize.Style
	switch st {
	case sheet.StyleFlagged:
		def = &excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{FlaggedColor}},
		}
	case sheet.StyleHeader:
		def = &excelize.Style{
			Font: &excelize.Font{Bold: true, Underline: "single"},
		}
	default:
		return 0, fmt.Errorf("unknown style %d", st)
	}
	id, err := w.f.NewStyle(def)
	if err != nil {
		return 0, err
	}
	if w.styles == nil {
		w.styles = make(map[sheet.Style]int)
	}
	w.styles[st] = id
	return id, nil
}
