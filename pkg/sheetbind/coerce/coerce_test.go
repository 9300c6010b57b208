package coerce

import (
	"math"
	"testing"
	"time"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/sheet"
)

var (
	textT     = schema.Type{Kind: schema.KindText}
	intT      = schema.Type{Kind: schema.KindInt, Bits: 64}
	int8T     = schema.Type{Kind: schema.KindInt, Bits: 8}
	uint16T   = schema.Type{Kind: schema.KindUint, Bits: 16}
	floatT    = schema.Type{Kind: schema.KindFloat, Bits: 64}
	float32T  = schema.Type{Kind: schema.KindFloat, Bits: 32}
	boolT     = schema.Type{Kind: schema.KindBool}
	timeT     = schema.Type{Kind: schema.KindTime}
	optIntT   = schema.Type{Kind: schema.KindInt, Bits: 64, Optional: true}
	optBoolT  = schema.Type{Kind: schema.KindBool, Optional: true}
	optTimeT  = schema.Type{Kind: schema.KindTime, Optional: true}
	optFloatT = schema.Type{Kind: schema.KindFloat, Bits: 64, Optional: true}
)

func TestCoerce(t *testing.T) {
	e := New("")
	tests := []struct {
		name   string
		typ    schema.Type
		raw    string
		want   any
		wantOK bool
	}{
		{"text", textT, "hello", "hello", true},
		{"empty text", textT, "", "", true},
		{"text keeps spaces", textT, "  a ", "  a ", true},
		{"int", intT, "-42", int64(-42), true},
		{"int with spaces", intT, " 42", nil, false},
		{"int partial", intT, "42abc", nil, false},
		{"int from float text", intT, "4.2", nil, false},
		{"int8 overflow", int8T, "128", nil, false},
		{"int8 max", int8T, "127", int64(127), true},
		{"uint", uint16T, "65535", uint64(65535), true},
		{"uint negative", uint16T, "-1", nil, false},
		{"float", floatT, "3.25", 3.25, true},
		{"float32", float32T, "0.1", float64(float32(0.1)), true},
		{"bool true", boolT, "true", true, true},
		{"bool TRUE", boolT, "TRUE", true, true},
		{"bool 0", boolT, "0", false, true},
		{"bool yes", boolT, "yes", nil, false},
		{"empty int", intT, "", nil, false},
		{"blank bool", boolT, "   ", nil, false},
		{"optional empty", optIntT, "", nil, true},
		{"optional blank", optBoolT, " \t", nil, true},
		{"optional value", optIntT, "5", int64(5), true},
		{"optional garbage", optIntT, "abc", nil, false},
		{"unsupported kind", schema.Type{Kind: schema.Kind(99)}, "1", nil, false},
		{"invalid kind", schema.Type{}, "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Coerce(tt.typ, tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Coerce(%+v, %q) ok = %v, want %v", tt.typ, tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Coerce(%+v, %q) = %v (%T), want %v (%T)", tt.typ, tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestCoerceTime(t *testing.T) {
	e := New("")
	want := time.Date(2024, 3, 9, 14, 30, 5, 250_000_000, time.UTC)

	got, ok := e.Coerce(timeT, "2024-03-09T14:30:05.25Z")
	if !ok || !got.(time.Time).Equal(want) {
		t.Errorf("Coerce(time) = %v, %v; want %v", got, ok, want)
	}

	if _, ok := e.Coerce(timeT, "09/03/2024"); ok {
		t.Error("non-canonical date accepted")
	}

	// Excel serial 45000 is 2023-03-15.
	got, ok = e.Coerce(timeT, "45000")
	if !ok {
		t.Fatal("serial date rejected")
	}
	if y, m, d := got.(time.Time).Date(); y != 2023 || m != time.March || d != 15 {
		t.Errorf("serial date = %v, want 2023-03-15", got)
	}

	if v, ok := e.Coerce(optTimeT, ""); !ok || v != nil {
		t.Errorf("optional empty time = %v, %v", v, ok)
	}
}

func TestCustomLayout(t *testing.T) {
	e := New("2006-01-02")
	if e.TimeLayout() != "2006-01-02" {
		t.Errorf("TimeLayout() = %q", e.TimeLayout())
	}
	got, ok := e.Coerce(timeT, "2024-12-31")
	if !ok || !got.(time.Time).Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Coerce = %v, %v", got, ok)
	}
	if r := e.Render(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)); r != "2024-01-02" {
		t.Errorf("Render = %q", r)
	}
}

func TestRegister(t *testing.T) {
	const kindPercent schema.Kind = 100
	e := New("")
	if _, ok := e.Coerce(schema.Type{Kind: kindPercent}, "5%"); ok {
		t.Fatal("unregistered kind coerced")
	}
	e.Register(kindPercent, func(raw string, _ int) (any, error) {
		return parseFloat(raw[:len(raw)-1], 64)
	})
	got, ok := e.Coerce(schema.Type{Kind: kindPercent}, "5%")
	if !ok || got != 5.0 {
		t.Errorf("Coerce(percent) = %v, %v", got, ok)
	}
}

func TestRoundTrip(t *testing.T) {
	e := New("")
	tests := []struct {
		typ schema.Type
		v   any
	}{
		{textT, "plain text"},
		{textT, ""},
		{intT, int64(math.MinInt64)},
		{intT, int64(0)},
		{uint16T, uint64(123)},
		{schema.Type{Kind: schema.KindUint, Bits: 64}, uint64(math.MaxUint64)},
		{floatT, 1e-7},
		{floatT, 12345.678},
		{floatT, -0.5},
		{float32T, float64(float32(0.1))},
		{boolT, true},
		{boolT, false},
		{timeT, time.Date(2001, 2, 3, 4, 5, 6, 7, time.UTC)},
		{optIntT, int64(5)},
		{optFloatT, 2.5},
		{optTimeT, time.Date(1999, 12, 31, 23, 59, 59, 0, time.FixedZone("X", 3600))},
	}

	for _, tt := range tests {
		text := e.RenderField(tt.typ, tt.v)
		got, ok := e.Coerce(tt.typ, text)
		if !ok {
			t.Errorf("Coerce(%+v, %q) failed for %v", tt.typ, text, tt.v)
			continue
		}
		if want, isTime := tt.v.(time.Time); isTime {
			if !got.(time.Time).Equal(want) {
				t.Errorf("time round trip %v -> %q -> %v", want, text, got)
			}
			continue
		}
		if got != tt.v {
			t.Errorf("round trip %v (%T) -> %q -> %v (%T)", tt.v, tt.v, text, got, got)
		}
	}
}

func TestRenderAbsent(t *testing.T) {
	e := New("")
	if got := e.Render(nil); got != "" {
		t.Errorf("Render(nil) = %q", got)
	}
	for _, typ := range []schema.Type{optIntT, optBoolT, optTimeT, optFloatT} {
		if v, ok := e.Coerce(typ, e.RenderField(typ, nil)); !ok || v != nil {
			t.Errorf("absent %+v round trip = %v, %v", typ, v, ok)
		}
	}
}

func TestRenderFloat32IsShort(t *testing.T) {
	e := New("")
	if got := e.RenderField(float32T, float64(float32(0.1))); got != "0.1" {
		t.Errorf("RenderField(float32 0.1) = %q, want 0.1", got)
	}
}

func TestCellTypeOf(t *testing.T) {
	tests := []struct {
		typ  schema.Type
		want sheet.CellType
	}{
		{textT, sheet.CellText},
		{intT, sheet.CellNumber},
		{uint16T, sheet.CellNumber},
		{optFloatT, sheet.CellNumber},
		{boolT, sheet.CellBool},
		{optBoolT, sheet.CellBool},
		{timeT, sheet.CellTime},
		{schema.Type{Kind: schema.Kind(99)}, sheet.CellText},
	}
	for _, tt := range tests {
		if got := CellTypeOf(tt.typ); got != tt.want {
			t.Errorf("CellTypeOf(%+v) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
