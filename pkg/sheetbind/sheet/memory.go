package sheet

import "fmt"

type memCell struct {
	text  string
	typ   CellType
	style Style
}

type coord struct{ row, col int }

// Memory is an in-memory Sheet. The zero value is not usable; call NewMemory.
type Memory struct {
	name      string
	cells     map[coord]*memCell
	rowStyles map[int]Style
}

// NewMemory returns an empty in-memory sheet.
func NewMemory(name string) *Memory {
	return &Memory{
		name:      name,
		cells:     make(map[coord]*memCell),
		rowStyles: make(map[int]Style),
	}
}

// FromRows builds a sheet from text rows starting at A1. Empty strings leave
// the cell unused.
func FromRows(name string, rows [][]string) *Memory {
	m := NewMemory(name)
	for r, row := range rows {
		for c, text := range row {
			if text != "" {
				m.cells[coord{r + 1, c + 1}] = &memCell{text: text}
			}
		}
	}
	return m
}

// Name returns the sheet name.
func (m *Memory) Name() string { return m.name }

// UsedRows returns the bounds of rows holding non-empty cells.
func (m *Memory) UsedRows() (first, last int, ok bool) {
	for k, c := range m.cells {
		if c.text == "" {
			continue
		}
		if !ok || k.row < first {
			first = k.row
		}
		if !ok || k.row > last {
			last = k.row
		}
		ok = true
	}
	return first, last, ok
}

// UsedColumns returns the bounds of non-empty cells within row.
func (m *Memory) UsedColumns(row int) (first, last int, ok bool) {
	for k, c := range m.cells {
		if k.row != row || c.text == "" {
			continue
		}
		if !ok || k.col < first {
			first = k.col
		}
		if !ok || k.col > last {
			last = k.col
		}
		ok = true
	}
	return first, last, ok
}

// CellText returns the text stored at row, col.
func (m *Memory) CellText(row, col int) (string, error) {
	if err := checkCoord(row, col); err != nil {
		return "", err
	}
	if c, ok := m.cells[coord{row, col}]; ok {
		return c.text, nil
	}
	return "", nil
}

// SetCell stores text and its type tag.
func (m *Memory) SetCell(row, col int, text string, typ CellType) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	c := m.cell(row, col)
	c.text = text
	c.typ = typ
	return nil
}

// SetCellStyle sets the style of a single cell.
func (m *Memory) SetCellStyle(row, col int, st Style) error {
	if err := checkCoord(row, col); err != nil {
		return err
	}
	m.cell(row, col).style = st
	return nil
}

// SetRowStyle sets the row style and restyles every existing cell of the row.
func (m *Memory) SetRowStyle(row int, st Style) error {
	if err := checkCoord(row, 1); err != nil {
		return err
	}
	m.rowStyles[row] = st
	for k, c := range m.cells {
		if k.row == row {
			c.style = st
		}
	}
	return nil
}

// CellStyle reports the style of a cell.
func (m *Memory) CellStyle(row, col int) Style {
	if c, ok := m.cells[coord{row, col}]; ok {
		return c.style
	}
	return m.rowStyles[row]
}

// RowStyle reports the style last applied to a row.
func (m *Memory) RowStyle(row int) Style { return m.rowStyles[row] }

// CellType reports the type tag of a cell.
func (m *Memory) CellType(row, col int) CellType {
	if c, ok := m.cells[coord{row, col}]; ok {
		return c.typ
	}
	return CellText
}

// Rows returns the used area as text rows, starting at row 1 and column 1.
func (m *Memory) Rows() [][]string {
	_, last, ok := m.UsedRows()
	if !ok {
		return nil
	}
	rows := make([][]string, last)
	for r := 1; r <= last; r++ {
		_, lastCol, ok := m.UsedColumns(r)
		if !ok {
			continue
		}
		row := make([]string, lastCol)
		for c := 1; c <= lastCol; c++ {
			row[c-1], _ = m.CellText(r, c)
		}
		rows[r-1] = row
	}
	return rows
}

func (m *Memory) cell(row, col int) *memCell {
	k := coord{row, col}
	c, ok := m.cells[k]
	if !ok {
		c = &memCell{style: m.rowStyles[row]}
		m.cells[k] = c
	}
	return c
}

func checkCoord(row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: row %d, column %d", ErrOutOfRange, row, col)
	}
	return nil
}
