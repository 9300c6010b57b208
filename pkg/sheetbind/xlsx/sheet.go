package xlsx

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a Workbook.
type Sheet struct {
	wb   *Workbook
	name string
	// rows caches GetRows output; nil after a typed write.
	rows [][]string
}

var _ sheet.Sheet = (*Sheet)(nil)

// Name returns the worksheet name.
func (s *Sheet) Name() string { return s.name }

// UsedRows returns the first and last rows holding a non-empty cell.
func (s *Sheet) UsedRows() (first, last int, ok bool) {
	rows, err := s.load()
	if err != nil {
		return 0, 0, false
	}
	minRow, maxRow, _, _ := findDataBounds(rows)
	if minRow < 0 {
		return 0, 0, false
	}
	return minRow + 1, maxRow + 1, true
}

// UsedColumns returns the first and last non-empty columns of row.
func (s *Sheet) UsedColumns(row int) (first, last int, ok bool) {
	rows, err := s.load()
	if err != nil || row < 1 || row > len(rows) {
		return 0, 0, false
	}
	minCol, maxCol := rowBounds(rows[row-1])
	if minCol < 0 {
		return 0, 0, false
	}
	return minCol + 1, maxCol + 1, true
}

// CellText returns the unformatted text of a cell. Numbers come back as
// stored, booleans as 1 or 0.
func (s *Sheet) CellText(row, col int) (string, error) {
	rows, err := s.load()
	if err != nil {
		return "", err
	}
	if row < 1 || col < 1 {
		return "", fmt.Errorf("%w: row %d, column %d", sheet.ErrOutOfRange, row, col)
	}
	if row > len(rows) || col > len(rows[row-1]) {
		return "", nil
	}
	return rows[row-1][col-1], nil
}

// SetCell writes text as the excelize value matching typ. Text that does not
// parse as the requested type is stored as a string.
func (s *Sheet) SetCell(row, col int, text string, typ sheet.CellType) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	f := s.wb.f

	switch typ {
	case sheet.CellNumber:
		s.rows = nil
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return f.SetCellValue(s.name, cell, i)
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return f.SetCellValue(s.name, cell, u)
		}
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return f.SetCellFloat(s.name, cell, v, -1, 64)
		}
	case sheet.CellBool:
		s.rows = nil
		if b, err := strconv.ParseBool(text); err == nil {
			return f.SetCellBool(s.name, cell, b)
		}
	}
	if err := f.SetCellStr(s.name, cell, text); err != nil {
		return err
	}
	s.remember(row, col, text)
	return nil
}

// SetCellStyle applies st to one cell.
func (s *Sheet) SetCellStyle(row, col int, st sheet.Style) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	id, err := s.wb.styleID(st)
	if err != nil {
		return err
	}
	return s.wb.f.SetCellStyle(s.name, cell, cell, id)
}

// SetRowStyle applies st to a row and its existing cells.
func (s *Sheet) SetRowStyle(row int, st sheet.Style) error {
	if row < 1 {
		return fmt.Errorf("%w: row %d", sheet.ErrOutOfRange, row)
	}
	id, err := s.wb.styleID(st)
	if err != nil {
		return err
	}
	return s.wb.f.SetRowStyle(s.name, row, row, id)
}

func (s *Sheet) load() ([][]string, error) {
	if s.rows != nil {
		return s.rows, nil
	}
	rows, err := s.wb.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	s.rows = rows
	return rows, nil
}

// remember patches the row cache after a string write so parsing a sheet
// while annotating it does not reload every row.
func (s *Sheet) remember(row, col int, text string) {
	if s.rows == nil {
		return
	}
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	r := s.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = text
	s.rows[row-1] = r
}

func cellName(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", fmt.Errorf("%w: row %d, column %d", sheet.ErrOutOfRange, row, col)
	}
	return excelize.CoordinatesToCellName(col, row)
}
