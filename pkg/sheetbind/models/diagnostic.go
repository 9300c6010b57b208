// Package models defines the result containers returned by parse operations.
package models

// RowDiagnostic records why one data row was rejected.
type RowDiagnostic struct {
	// Row is the sheet row number (1-based).
	Row int `json:"row"`
	// Messages lists parse and validation failures in the order they were found.
	Messages []string `json:"messages"`
	// Columns lists the 1-based columns whose cells failed to parse.
	Columns []int `json:"columns,omitempty"`
}
