package parser

import (
	"strings"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
)

// MessageSeparator joins the diagnostics written next to an invalid row.
const MessageSeparator = "->"

// Annotator writes parse feedback into the sheet.
type Annotator interface {
	// MarkCell tags one cell as valid or flagged.
	MarkCell(sh sheet.Sheet, row, col int, valid bool) error
	// MarkRow tags a row and, for an invalid row, writes its messages into
	// the cell right of the row's last used cell. boundCol is the rightmost
	// column bound to a field; the message never lands at or left of it.
	MarkRow(sh sheet.Sheet, row int, valid bool, messages []string, boundCol int) error
}

// DefaultAnnotator highlights flagged cells and rows and writes joined
// messages for invalid rows.
type DefaultAnnotator struct{}

// MarkCell implements Annotator.
func (DefaultAnnotator) MarkCell(sh sheet.Sheet, row, col int, valid bool) error {
	return sh.SetCellStyle(row, col, styleFor(valid))
}

// MarkRow implements Annotator. Empty messages are dropped; an invalid row
// left without messages is flagged but gets no message cell. Marking the
// same row twice rewrites the message in place.
func (DefaultAnnotator) MarkRow(sh sheet.Sheet, row int, valid bool, messages []string, boundCol int) error {
	if err := sh.SetRowStyle(row, styleFor(valid)); err != nil {
		return err
	}
	if valid {
		return nil
	}
	msg := joinMessages(messages)
	if msg == "" {
		return nil
	}

	col := max(boundCol, 0) + 1
	if _, last, ok := sh.UsedColumns(row); ok && last >= col {
		col = last + 1
		if text, err := sh.CellText(row, last); err == nil && text == msg {
			col = last
		}
	}
	return sh.SetCell(row, col, msg, sheet.CellText)
}

func joinMessages(messages []string) string {
	kept := make([]string, 0, len(messages))
	for _, m := range messages {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return strings.Join(kept, MessageSeparator)
}

func styleFor(valid bool) sheet.Style {
	if valid {
		return sheet.StyleNeutral
	}
	return sheet.StyleFlagged
}
