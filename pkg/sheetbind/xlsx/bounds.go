package xlsx

// findDataBounds finds the 0-based bounding box of non-empty cells.
// minRow is -1 when every cell is empty.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		first, last := rowBounds(row)
		if first < 0 {
			continue
		}
		if minRow < 0 {
			minRow = rowIdx
		}
		maxRow = rowIdx
		if minCol < 0 || first < minCol {
			minCol = first
		}
		if last > maxCol {
			maxCol = last
		}
	}

	return
}

// rowBounds returns the 0-based first and last non-empty columns of a row,
// or -1, -1 for an empty row.
func rowBounds(row []string) (first, last int) {
	first, last = -1, -1
	for colIdx, cell := range row {
		if cell == "" {
			continue
		}
		if first < 0 {
			first = colIdx
		}
		last = colIdx
	}
	return
}
