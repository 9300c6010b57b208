package models

// SheetResult is the outcome of parsing one sheet into records of type T.
type SheetResult[T any] struct {
	// SheetName is the parsed sheet.
	SheetName string `json:"sheet_name"`
	// TotalRecordCount counts every data row visited, valid or not.
	TotalRecordCount int `json:"total_record_count"`
	// Valid holds the records that parsed and validated, in row order.
	Valid []T `json:"valid"`
	// Invalid describes each rejected row, in row order.
	Invalid []RowDiagnostic `json:"invalid,omitempty"`
}

// ValidCount returns the number of accepted records.
func (r *SheetResult[T]) ValidCount() int { return len(r.Valid) }

// InvalidCount returns the number of rejected rows.
func (r *SheetResult[T]) InvalidCount() int { return len(r.Invalid) }
