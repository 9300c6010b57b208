// Package coerce converts raw cell text into typed field values and back.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
	"github.com/xuri/excelize/v2"
)

// DefaultTimeLayout is the layout used for temporal cells unless configured
// otherwise. It renders every time.Time in a form that reparses exactly.
const DefaultTimeLayout = time.RFC3339Nano

// Func parses non-empty raw text for one Kind. bits is the field bit size.
type Func func(raw string, bits int) (any, error)

// Engine is a registry of parse functions keyed by schema.Kind.
type Engine struct {
	timeLayout string
	funcs      map[schema.Kind]Func
}

// New returns an engine with the built-in kinds registered. An empty
// timeLayout selects DefaultTimeLayout.
func New(timeLayout string) *Engine {
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	e := &Engine{timeLayout: timeLayout, funcs: make(map[schema.Kind]Func)}
	e.Register(schema.KindInt, parseInt)
	e.Register(schema.KindUint, parseUint)
	e.Register(schema.KindFloat, parseFloat)
	e.Register(schema.KindBool, parseBool)
	e.Register(schema.KindTime, e.parseTime)
	return e
}

// Register installs fn as the parser for kind, replacing any previous one.
// Text is handled directly and cannot be overridden.
func (e *Engine) Register(kind schema.Kind, fn Func) {
	e.funcs[kind] = fn
}

// TimeLayout returns the layout used for temporal cells.
func (e *Engine) TimeLayout() string { return e.timeLayout }

// Coerce converts raw into a value for a field of type t. ok is false when the
// text does not parse or no parser is registered for t.Kind. Absent optional
// values are returned as nil with ok true.
func (e *Engine) Coerce(t schema.Type, raw string) (v any, ok bool) {
	if t.Kind == schema.KindText {
		return raw, true
	}
	fn, found := e.funcs[t.Kind]
	if !found {
		return nil, false
	}
	if strings.TrimSpace(raw) == "" {
		if t.Optional {
			return nil, true
		}
		return nil, false
	}
	v, err := fn(raw, t.Bits)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Render returns the canonical text of a normalized value. Absent values
// render as "".
func (e *Engine) Render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(e.timeLayout)
	default:
		return fmt.Sprint(x)
	}
}

// RenderField renders v for a field of type t. Floats are formatted at the
// field's bit size so 32-bit values stay short and exact.
func (e *Engine) RenderField(t schema.Type, v any) string {
	if f, ok := v.(float64); ok && t.Kind == schema.KindFloat && t.Bits == 32 {
		return strconv.FormatFloat(f, 'f', -1, 32)
	}
	return e.Render(v)
}

// CellTypeOf classifies a field type into the value-type tag written to
// cells. It mirrors the families the engine parses.
func CellTypeOf(t schema.Type) sheet.CellType {
	switch t.Kind {
	case schema.KindInt, schema.KindUint, schema.KindFloat:
		return sheet.CellNumber
	case schema.KindBool:
		return sheet.CellBool
	case schema.KindTime:
		return sheet.CellTime
	default:
		return sheet.CellText
	}
}

func bitSize(bits int) int {
	if bits <= 0 {
		return 64
	}
	return bits
}

func parseInt(raw string, bits int) (any, error) {
	return strconv.ParseInt(raw, 10, bitSize(bits))
}

func parseUint(raw string, bits int) (any, error) {
	return strconv.ParseUint(raw, 10, bitSize(bits))
}

func parseFloat(raw string, bits int) (any, error) {
	return strconv.ParseFloat(raw, bitSize(bits))
}

func parseBool(raw string, _ int) (any, error) {
	return strconv.ParseBool(raw)
}

// parseTime accepts the configured layout, then falls back to an Excel serial
// date as stored by spreadsheet applications for date-formatted cells.
func (e *Engine) parseTime(raw string, _ int) (any, error) {
	t, err := time.Parse(e.timeLayout, raw)
	if err == nil {
		return t, nil
	}
	serial, serr := strconv.ParseFloat(raw, 64)
	if serr != nil || serial < 0 {
		return nil, err
	}
	return excelize.ExcelDateToTime(serial, false)
}
