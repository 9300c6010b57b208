// Package schema describes record types as ordered lists of typed fields and
// resolves the column header each field maps to.
package schema

import (
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/text/cases"
)

// ErrNoFields indicates a schema without any field.
var ErrNoFields = errors.New("schema has no fields")

// DuplicateError reports two fields sharing a field name or a display name.
type DuplicateError struct {
	// What is either "field" or "column".
	What   string
	Name   string
	First  string
	Second string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s name %q (fields %s and %s)", e.What, e.Name, e.First, e.Second)
}

// UnknownFieldError reports an override for a field the schema does not have.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("column override for unknown field %q", e.Field)
}

// Schema is the ordered field description of record type T.
// A Schema is immutable; the With* methods return modified copies.
type Schema[T any] struct {
	name      string
	fields    []Field[T]
	overrides map[string]string
	newRecord func() T
}

// New builds a schema from fields in declaration order.
func New[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{
		name:   typeName[T](),
		fields: append([]Field[T](nil), fields...),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Must panics if err is non-nil. It is meant for package-level schemas.
func Must[T any](s *Schema[T], err error) *Schema[T] {
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name, by default the Go type name of T.
func (s *Schema[T]) Name() string { return s.name }

// Named returns a copy of s with a different name.
func (s *Schema[T]) Named(name string) *Schema[T] {
	c := *s
	c.name = name
	return &c
}

// WithColumnNames returns a copy of s whose display names are overridden by
// the given field-name to column-name table.
func (s *Schema[T]) WithColumnNames(overrides map[string]string) (*Schema[T], error) {
	c := *s
	c.overrides = make(map[string]string, len(s.overrides)+len(overrides))
	for k, v := range s.overrides {
		c.overrides[k] = v
	}
	for k, v := range overrides {
		c.overrides[k] = v
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WithConstructor returns a copy of s that creates new records with fn
// instead of the zero value of T.
func (s *Schema[T]) WithConstructor(fn func() T) *Schema[T] {
	c := *s
	c.newRecord = fn
	return &c
}

// NewRecord returns a fresh record to be populated by a parse.
func (s *Schema[T]) NewRecord() T {
	if s.newRecord != nil {
		return s.newRecord()
	}
	var zero T
	return zero
}

// Fields returns the fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	return append([]Field[T](nil), s.fields...)
}

// ColumnName resolves the display name of f: the override table first, then
// the name declared on the field, then the field identifier.
func (s *Schema[T]) ColumnName(f Field[T]) string {
	if name, ok := s.overrides[f.name]; ok && name != "" {
		return name
	}
	if f.column != "" {
		return f.column
	}
	return f.name
}

// Columns returns the display names of the readable fields in order.
func (s *Schema[T]) Columns() []string {
	var cols []string
	for _, f := range s.fields {
		if f.Readable() {
			cols = append(cols, s.ColumnName(f))
		}
	}
	return cols
}

func (s *Schema[T]) validate() error {
	if len(s.fields) == 0 {
		return ErrNoFields
	}
	names := make(map[string]string, len(s.fields))
	columns := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		if f.name == "" {
			return errors.New("field with empty name")
		}
		if f.get == nil && f.set == nil {
			return fmt.Errorf("field %s has no accessor", f.name)
		}
		if prev, ok := names[f.name]; ok {
			return &DuplicateError{What: "field", Name: f.name, First: prev, Second: f.name}
		}
		names[f.name] = f.name

		col := Fold(s.ColumnName(f))
		if prev, ok := columns[col]; ok {
			return &DuplicateError{What: "column", Name: s.ColumnName(f), First: prev, Second: f.name}
		}
		columns[col] = f.name
	}
	for k := range s.overrides {
		if _, ok := names[k]; !ok {
			return &UnknownFieldError{Field: k}
		}
	}
	return nil
}

// Fold returns the case-folded form of a column name, used for every
// case-insensitive header comparison.
func Fold(name string) string {
	return cases.Fold().String(name)
}

func typeName[T any]() string {
	if t := reflect.TypeFor[T](); t != nil && t.Name() != "" {
		return t.Name()
	}
	return "Record"
}
