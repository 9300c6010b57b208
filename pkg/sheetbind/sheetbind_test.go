package sheetbind

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/parser"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/xlsx"
	"github.com/xuri/excelize/v2"
)

type Employee struct {
	Name     string
	Age      *int
	Salary   float64
	Level    uint8
	Active   bool
	Hired    time.Time
	Left     *time.Time
	Rating   *float32
	Verified *bool
}

var employeeSchema = schema.Must(schema.New(
	schema.Text("Name", func(e *Employee) *string { return &e.Name }),
	schema.OptionalInt("Age", func(e *Employee) **int { return &e.Age }),
	schema.Float("Salary", func(e *Employee) *float64 { return &e.Salary }).As("Annual Salary"),
	schema.Uint("Level", func(e *Employee) *uint8 { return &e.Level }),
	schema.Bool("Active", func(e *Employee) *bool { return &e.Active }),
	schema.Time("Hired", func(e *Employee) *time.Time { return &e.Hired }),
	schema.OptionalTime("Left", func(e *Employee) **time.Time { return &e.Left }),
	schema.OptionalFloat("Rating", func(e *Employee) **float32 { return &e.Rating }),
	schema.OptionalBool("Verified", func(e *Employee) **bool { return &e.Verified }),
))

func ptr[V any](v V) *V { return &v }

func sampleEmployees() []Employee {
	return []Employee{
		{
			Name: "Ada", Age: ptr(36), Salary: 123456.78, Level: 7, Active: true,
			Hired: time.Date(2015, 6, 1, 9, 0, 0, 0, time.UTC), Rating: ptr(float32(4.5)), Verified: ptr(true),
		},
		{
			Name: "Grace", Salary: 0.5, Level: 255, Active: false,
			Hired: time.Date(1999, 1, 31, 0, 0, 0, 123000000, time.UTC),
			Left:  ptr(time.Date(2020, 12, 31, 17, 30, 0, 0, time.UTC)),
		},
		{Name: "", Salary: -1, Hired: time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
}

func toBytes(t *testing.T, wb *xlsx.Workbook) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	require.NoError(t, wb.Close())
	return &buf
}

func TestListToExcelRoundTrip(t *testing.T) {
	records := sampleEmployees()
	wb, err := ListToExcel(records, employeeSchema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"ListOfEmployee"}, wb.SheetNames())

	res, err := ParseExcel(toBytes(t, wb), employeeSchema, nil, DefaultOptions())
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, len(records), res.TotalRecordCount)
	require.Len(t, res.Valid, len(records))
	assert.Empty(t, res.Invalid)

	for i, want := range records {
		got := res.Valid[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Age, got.Age)
		assert.Equal(t, want.Salary, got.Salary)
		assert.Equal(t, want.Level, got.Level)
		assert.Equal(t, want.Active, got.Active)
		assert.True(t, want.Hired.Equal(got.Hired), "Hired %v != %v", want.Hired, got.Hired)
		if want.Left == nil {
			assert.Nil(t, got.Left)
		} else {
			require.NotNil(t, got.Left)
			assert.True(t, want.Left.Equal(*got.Left))
		}
		assert.Equal(t, want.Rating, got.Rating)
		assert.Equal(t, want.Verified, got.Verified)
	}
}

func TestListToExcelCellTypes(t *testing.T) {
	wb, err := ListToExcel(sampleEmployees()[:1], employeeSchema, DefaultOptions())
	require.NoError(t, err)
	defer wb.Close()

	f := wb.File()
	header, err := f.GetRows("ListOfEmployee")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age", "Annual Salary", "Level", "Active", "Hired", "Left", "Rating", "Verified"}, header[0])

	typ, err := f.GetCellType("ListOfEmployee", "E2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)

	typ, err = f.GetCellType("ListOfEmployee", "A2")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ)
}

func TestConcreteScenario(t *testing.T) {
	type Person struct {
		Name string
		Age  *int
	}
	s := schema.Must(schema.New(
		schema.Text("Name", func(p *Person) *string { return &p.Name }),
		schema.OptionalInt("Age", func(p *Person) **int { return &p.Age }),
	))

	wb, err := ListToExcel([]Person{{Name: "A", Age: ptr(5)}, {Name: "B"}}, s, DefaultOptions())
	require.NoError(t, err)

	rows, err := wb.File().GetRows("ListOfPerson")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, rows[0])
	assert.Equal(t, []string{"A", "5"}, rows[1])
	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[2][0])
	if len(rows[2]) > 1 {
		assert.Equal(t, "", rows[2][1])
	}

	res, err := ParseExcel(toBytes(t, wb), s, nil, DefaultOptions())
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, 2, res.TotalRecordCount)
	require.Len(t, res.Valid, 2)
	assert.Equal(t, Person{Name: "A", Age: ptr(5)}, res.Valid[0])
	assert.Equal(t, Person{Name: "B"}, res.Valid[1])
}

func TestBuildTemplate(t *testing.T) {
	wb, err := BuildTemplate(employeeSchema)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"EmployeeTemplate"}, wb.SheetNames())
	rows, err := wb.File().GetRows("EmployeeTemplate")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	empty, err := ListToExcel(nil, employeeSchema, DefaultOptions())
	require.NoError(t, err)
	defer empty.Close()
	emptyRows, err := empty.File().GetRows("ListOfEmployee")
	require.NoError(t, err)
	assert.Equal(t, emptyRows, rows)

	styleID, err := wb.File().GetCellStyle("EmployeeTemplate", "A1")
	require.NoError(t, err)
	style, err := wb.File().GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "single", style.Font.Underline)
}

func TestParseExcelAnnotatesWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "AGE", "Notes"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Ann", 30, "x"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Bob", "old"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"", 12}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	f.Close()

	type Person struct {
		Name string
		Age  *int
	}
	s := schema.Must(schema.New(
		schema.Text("Name", func(p *Person) *string { return &p.Name }),
		schema.OptionalInt("Age", func(p *Person) **int { return &p.Age }),
	))
	validate := func(p Person) []string {
		if p.Name == "" {
			return []string{"Name is required."}
		}
		return nil
	}

	res, err := ParseExcel(&buf, s, parser.Validator[Person](validate), DefaultOptions())
	require.NoError(t, err)
	defer res.Close()

	assert.Equal(t, 3, res.TotalRecordCount)
	require.Len(t, res.Valid, 1)
	assert.Equal(t, "Ann", res.Valid[0].Name)
	require.Len(t, res.Invalid, 2)
	assert.Equal(t, 3, res.Invalid[0].Row)
	assert.Equal(t, []string{"Age did not parse."}, res.Invalid[0].Messages)
	assert.Equal(t, 4, res.Invalid[1].Row)

	out := res.Workbook.File()
	msg, err := out.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Age did not parse.", msg)
	msg, err = out.GetCellValue(sheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Name is required.", msg)

	flagged, err := out.GetCellStyle(sheet, "A3")
	require.NoError(t, err)
	assert.NotZero(t, flagged)
	bad, err := out.GetCellStyle(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, flagged, bad)
	style, err := out.GetStyle(flagged)
	require.NoError(t, err)
	assert.Equal(t, "pattern", style.Fill.Type)

	neutral, err := out.GetCellStyle(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, 0, neutral)
}

func TestParseExcelMissingColumn(t *testing.T) {
	wb, err := BuildTemplate(employeeSchema)
	require.NoError(t, err)
	sh, err := wb.SheetAt(0)
	require.NoError(t, err)
	require.NoError(t, wb.File().RemoveCol(sh.Name(), "C"))

	_, err = ParseExcel(toBytes(t, wb), employeeSchema, nil, DefaultOptions())
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "parse", perr.Stage)
	var missing *parser.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Salary", missing.Field)
	assert.Equal(t, "Annual Salary", missing.Column)
}

func TestParseExcelSheetSelection(t *testing.T) {
	type Row struct{ A string }
	s := schema.Must(schema.New(schema.Text("A", func(r *Row) *string { return &r.A })))

	wb := xlsx.New()
	first, err := wb.NewSheet("First")
	require.NoError(t, err)
	require.NoError(t, first.SetCell(1, 1, "Other", 0))
	second, err := wb.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, second.SetCell(1, 1, "A", 0))
	require.NoError(t, second.SetCell(2, 1, "v", 0))
	data := toBytes(t, wb).Bytes()

	_, err = ParseExcel(bytes.NewReader(data), s, nil, DefaultOptions())
	var missing *parser.MissingColumnError
	assert.ErrorAs(t, err, &missing, "first sheet has no A column")

	opts := DefaultOptions()
	opts.SheetName = "Second"
	res, err := ParseExcel(bytes.NewReader(data), s, nil, opts)
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, "Second", res.SheetName)
	assert.Equal(t, []Row{{A: "v"}}, res.Valid)

	opts.SheetName = "Nope"
	_, err = ParseExcel(bytes.NewReader(data), s, nil, opts)
	assert.ErrorIs(t, err, xlsx.ErrSheetNotFound)
}

func TestParseExcelInvalidInput(t *testing.T) {
	_, err := ParseExcel(bytes.NewReader([]byte("not a workbook")), employeeSchema, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), employeeSchema, nil, DefaultOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound), "err = %v", err)

	wb, err := ListToExcel(sampleEmployees(), employeeSchema, DefaultOptions())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	res, err := ParseFile(path, employeeSchema, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Valid, 3)
	require.NoError(t, res.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.ShouldSkipBlankRows())
	skip := true
	opts.SkipBlankRows = &skip
	assert.True(t, opts.ShouldSkipBlankRows())
	assert.True(t, opts.parserConfig().SkipBlankRows)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "ListOfX", sheetTitle("ListOfX"))
	long := "ListOfAVeryLongRecordTypeNameThatOverflows"
	assert.Len(t, []rune(sheetTitle(long)), 31)
}

func TestNilSchemaIsAnError(t *testing.T) {
	wb, err := ListToExcel(sampleEmployees(), employeeSchema, DefaultOptions())
	require.NoError(t, err)
	buf := toBytes(t, wb)

	res, err := ParseExcel[Employee](buf, nil, nil, DefaultOptions())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, parser.ErrNilSchema)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "parse", parseErr.Stage)

	_, err = ParseFile[Employee](filepath.Join(t.TempDir(), "any.xlsx"), nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, parser.ErrNilSchema)

	out, err := ListToExcel[Employee](nil, nil, DefaultOptions())
	assert.Nil(t, out)
	assert.ErrorIs(t, err, parser.ErrNilSchema)

	out, err = BuildTemplate[Employee](nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, parser.ErrNilSchema)
}

func TestTrailingEmptyRecordIsNotCounted(t *testing.T) {
	type Person struct {
		Name string
		Age  *int
	}
	s := schema.Must(schema.New(
		schema.Text("Name", func(p *Person) *string { return &p.Name }),
		schema.OptionalInt("Age", func(p *Person) **int { return &p.Age }),
	))

	wb, err := ListToExcel([]Person{{Name: "A"}, {Name: ""}}, s, DefaultOptions())
	require.NoError(t, err)

	res, err := ParseExcel(toBytes(t, wb), s, nil, DefaultOptions())
	require.NoError(t, err)
	defer res.Close()

	// The all-empty last row lies past the last used row.
	assert.Equal(t, 1, res.TotalRecordCount)
	assert.Equal(t, []Person{{Name: "A"}}, res.Valid)
}
