// Package output renders parse outcomes as JSON.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/models"
)

// Summary is the JSON view of a parsed sheet.
type Summary struct {
	SheetName        string                 `json:"sheet_name"`
	TotalRecordCount int                    `json:"total_record_count"`
	ValidCount       int                    `json:"valid_count"`
	InvalidCount     int                    `json:"invalid_count"`
	Invalid          []models.RowDiagnostic `json:"invalid,omitempty"`
	Records          any                    `json:"records,omitempty"`
}

// Summarize builds the JSON view of res. Valid records are included only
// when withRecords is set.
func Summarize[T any](res *models.SheetResult[T], withRecords bool) Summary {
	s := Summary{
		SheetName:        res.SheetName,
		TotalRecordCount: res.TotalRecordCount,
		ValidCount:       res.ValidCount(),
		InvalidCount:     res.InvalidCount(),
		Invalid:          res.Invalid,
	}
	if withRecords && len(res.Valid) > 0 {
		s.Records = res.Valid
	}
	return s
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ResultToJSON serializes the summary of res.
func ResultToJSON[T any](res *models.SheetResult[T], withRecords, pretty bool) ([]byte, error) {
	return ToJSON(Summarize(res, withRecords), pretty)
}
