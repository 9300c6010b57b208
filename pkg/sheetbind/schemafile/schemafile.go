// Package schemafile loads record schemas from YAML so sheets can be parsed
// without a Go record type. Records are maps from field name to value.
//
// A schema file looks like:
//
//	name: Employee
//	time_layout: "2006-01-02"
//	columns:
//	  - field: Name
//	    type: text
//	    required: true
//	  - field: Age
//	    type: int
//	    optional: true
//	    column: Years
package schemafile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/coerce"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/parser"
	"github.com/ukaji3/sheetbind-go/pkg/sheetbind/schema"
	"gopkg.in/yaml.v3"
)

// Record is a parsed row keyed by field name. Absent optional values are nil.
type Record map[string]any

// Column is one field entry of a schema file.
type Column struct {
	Field    string `yaml:"field"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
	Column   string `yaml:"column,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// File is a decoded schema file.
type File struct {
	Name          string   `yaml:"name"`
	TimeLayout    string   `yaml:"time_layout,omitempty"`
	SkipBlankRows *bool    `yaml:"skip_blank_rows,omitempty"`
	Columns       []Column `yaml:"columns"`
}

// Load decodes a schema file from r. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("schema file is empty")
		}
		return nil, fmt.Errorf("decode schema file: %w", err)
	}
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("schema file declares no columns")
	}
	for i, c := range f.Columns {
		if c.Field == "" {
			return nil, fmt.Errorf("column %d: field is required", i+1)
		}
		if _, err := ParseType(c.Type); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Field, err)
		}
	}
	return &f, nil
}

// LoadFile decodes the schema file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(fh)
}

// Schema builds the record schema described by f.
func (f *File) Schema() (*schema.Schema[Record], error) {
	fields := make([]schema.Field[Record], 0, len(f.Columns))
	for _, c := range f.Columns {
		typ, err := ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Field, err)
		}
		typ.Optional = c.Optional
		field := c.Field
		fields = append(fields, schema.Custom(field, typ,
			func(r *Record) any { return (*r)[field] },
			func(r *Record, v any) { (*r)[field] = v },
		).As(c.Column))
	}

	s, err := schema.New(fields...)
	if err != nil {
		return nil, err
	}
	s = s.WithConstructor(func() Record { return make(Record, len(fields)) })
	if f.Name != "" {
		s = s.Named(f.Name)
	}
	return s, nil
}

// Validator returns a record validator enforcing the required flags of f,
// or nil when no column is required.
func (f *File) Validator() parser.Validator[Record] {
	var required []string
	for _, c := range f.Columns {
		if c.Required {
			required = append(required, c.Field)
		}
	}
	if len(required) == 0 {
		return nil
	}
	return func(r Record) []string {
		var msgs []string
		for _, name := range required {
			switch v := r[name].(type) {
			case nil:
				msgs = append(msgs, name+" is required.")
			case string:
				if strings.TrimSpace(v) == "" {
					msgs = append(msgs, name+" is required.")
				}
			}
		}
		return msgs
	}
}

// Normalize converts loosely typed values, such as those decoded from JSON,
// into the value each column parses to. Keys that name no column are
// rejected, as are missing values of required non-text columns.
func (f *File) Normalize(rec Record, engine *coerce.Engine) error {
	if engine == nil {
		engine = coerce.New(f.TimeLayout)
	}
	known := make(map[string]bool, len(f.Columns))
	for _, c := range f.Columns {
		known[c.Field] = true
	}
	for key := range rec {
		if !known[key] {
			return fmt.Errorf("unknown field %q", key)
		}
	}

	for _, c := range f.Columns {
		typ, err := ParseType(c.Type)
		if err != nil {
			return fmt.Errorf("column %s: %w", c.Field, err)
		}
		typ.Optional = c.Optional

		raw := ""
		if v, ok := rec[c.Field]; ok && v != nil {
			raw = fmt.Sprint(v)
		}
		if raw == "" && typ.Kind == schema.KindText {
			continue
		}
		v, ok := engine.Coerce(typ, raw)
		if !ok {
			return fmt.Errorf("field %s: cannot use %q as %s", c.Field, raw, typ.Kind)
		}
		rec[c.Field] = v
	}
	return nil
}

// ParseType converts a type name of a schema file into a field type.
func ParseType(name string) (schema.Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "string":
		return schema.Type{Kind: schema.KindText}, nil
	case "int", "int64":
		return schema.Type{Kind: schema.KindInt, Bits: 64}, nil
	case "int8":
		return schema.Type{Kind: schema.KindInt, Bits: 8}, nil
	case "int16":
		return schema.Type{Kind: schema.KindInt, Bits: 16}, nil
	case "int32":
		return schema.Type{Kind: schema.KindInt, Bits: 32}, nil
	case "uint", "uint64":
		return schema.Type{Kind: schema.KindUint, Bits: 64}, nil
	case "uint8", "byte":
		return schema.Type{Kind: schema.KindUint, Bits: 8}, nil
	case "uint16":
		return schema.Type{Kind: schema.KindUint, Bits: 16}, nil
	case "uint32":
		return schema.Type{Kind: schema.KindUint, Bits: 32}, nil
	case "float", "float64", "number", "decimal":
		return schema.Type{Kind: schema.KindFloat, Bits: 64}, nil
	case "float32":
		return schema.Type{Kind: schema.KindFloat, Bits: 32}, nil
	case "bool", "boolean":
		return schema.Type{Kind: schema.KindBool}, nil
	case "time", "date", "datetime":
		return schema.Type{Kind: schema.KindTime}, nil
	default:
		return schema.Type{}, fmt.Errorf("unsupported type %q", name)
	}
}
