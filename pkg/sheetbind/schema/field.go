package schema

import (
	"time"
	"unsafe"
)

// Kind tags the primitive family of a field.
type Kind int

const (
	// KindInvalid is the zero Kind; no coercion is registered for it.
	KindInvalid Kind = iota
	// KindText holds strings.
	KindText
	// KindInt holds signed integers.
	KindInt
	// KindUint holds unsigned integers.
	KindUint
	// KindFloat holds floating-point numbers.
	KindFloat
	// KindBool holds booleans.
	KindBool
	// KindTime holds time.Time values.
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Type is the static type of a field.
type Type struct {
	Kind Kind
	// Bits is the bit size for integer and float kinds (8, 16, 32, 64).
	Bits int
	// Optional marks a field that may be absent. Absent values are nil.
	Optional bool
}

// Signed is the constraint for signed integer fields.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the constraint for unsigned integer fields.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Floating is the constraint for floating-point fields.
type Floating interface {
	~float32 | ~float64
}

// Field describes one column of a record type T.
//
// Values crossing Get and Set are normalized: string, int64, uint64, float64,
// bool, time.Time, or nil for an absent optional value.
type Field[T any] struct {
	name   string
	column string
	typ    Type
	get    func(*T) any
	set    func(*T, any)
}

// Name returns the field identifier.
func (f Field[T]) Name() string { return f.name }

// Declared returns the display name declared with As, or "".
func (f Field[T]) Declared() string { return f.column }

// Type returns the static type of the field.
func (f Field[T]) Type() Type { return f.typ }

// Readable reports whether the field value can be read from a record.
func (f Field[T]) Readable() bool { return f.get != nil }

// Writable reports whether the field value can be assigned on a record.
func (f Field[T]) Writable() bool { return f.set != nil }

// Get returns the normalized value of the field on rec.
func (f Field[T]) Get(rec *T) any { return f.get(rec) }

// Set assigns a normalized value to the field on rec.
func (f Field[T]) Set(rec *T, v any) { f.set(rec, v) }

// As returns a copy of the field with a declared display name.
func (f Field[T]) As(column string) Field[T] {
	f.column = column
	return f
}

// Custom builds a field from explicit accessors. A nil get makes the field
// write-only; a nil set makes it read-only.
func Custom[T any](name string, typ Type, get func(*T) any, set func(*T, any)) Field[T] {
	return Field[T]{name: name, typ: typ, get: get, set: set}
}

// Text binds a string field.
func Text[T any](name string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindText},
		get:  func(r *T) any { return *ptr(r) },
		set:  func(r *T, v any) { *ptr(r) = v.(string) },
	}
}

// Int binds a signed integer field.
func Int[T any, V Signed](name string, ptr func(*T) *V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindInt, Bits: bitsOf[V]()},
		get:  func(r *T) any { return int64(*ptr(r)) },
		set:  func(r *T, v any) { *ptr(r) = V(v.(int64)) },
	}
}

// OptionalInt binds a nullable signed integer field.
func OptionalInt[T any, V Signed](name string, ptr func(*T) **V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindInt, Bits: bitsOf[V](), Optional: true},
		get: func(r *T) any {
			if p := *ptr(r); p != nil {
				return int64(*p)
			}
			return nil
		},
		set: func(r *T, v any) {
			if v == nil {
				*ptr(r) = nil
				return
			}
			x := V(v.(int64))
			*ptr(r) = &x
		},
	}
}

// Uint binds an unsigned integer field.
func Uint[T any, V Unsigned](name string, ptr func(*T) *V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindUint, Bits: bitsOf[V]()},
		get:  func(r *T) any { return uint64(*ptr(r)) },
		set:  func(r *T, v any) { *ptr(r) = V(v.(uint64)) },
	}
}

// OptionalUint binds a nullable unsigned integer field.
func OptionalUint[T any, V Unsigned](name string, ptr func(*T) **V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindUint, Bits: bitsOf[V](), Optional: true},
		get: func(r *T) any {
			if p := *ptr(r); p != nil {
				return uint64(*p)
			}
			return nil
		},
		set: func(r *T, v any) {
			if v == nil {
				*ptr(r) = nil
				return
			}
			x := V(v.(uint64))
			*ptr(r) = &x
		},
	}
}

// Float binds a floating-point field.
func Float[T any, V Floating](name string, ptr func(*T) *V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindFloat, Bits: bitsOf[V]()},
		get:  func(r *T) any { return float64(*ptr(r)) },
		set:  func(r *T, v any) { *ptr(r) = V(v.(float64)) },
	}
}

// OptionalFloat binds a nullable floating-point field.
func OptionalFloat[T any, V Floating](name string, ptr func(*T) **V) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindFloat, Bits: bitsOf[V](), Optional: true},
		get: func(r *T) any {
			if p := *ptr(r); p != nil {
				return float64(*p)
			}
			return nil
		},
		set: func(r *T, v any) {
			if v == nil {
				*ptr(r) = nil
				return
			}
			x := V(v.(float64))
			*ptr(r) = &x
		},
	}
}

// Bool binds a boolean field.
func Bool[T any](name string, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindBool},
		get:  func(r *T) any { return *ptr(r) },
		set:  func(r *T, v any) { *ptr(r) = v.(bool) },
	}
}

// OptionalBool binds a nullable boolean field.
func OptionalBool[T any](name string, ptr func(*T) **bool) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindBool, Optional: true},
		get: func(r *T) any {
			if p := *ptr(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			if v == nil {
				*ptr(r) = nil
				return
			}
			x := v.(bool)
			*ptr(r) = &x
		},
	}
}

// Time binds a time.Time field.
func Time[T any](name string, ptr func(*T) *time.Time) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindTime},
		get:  func(r *T) any { return *ptr(r) },
		set:  func(r *T, v any) { *ptr(r) = v.(time.Time) },
	}
}

// OptionalTime binds a nullable time.Time field.
func OptionalTime[T any](name string, ptr func(*T) **time.Time) Field[T] {
	return Field[T]{
		name: name,
		typ:  Type{Kind: KindTime, Optional: true},
		get: func(r *T) any {
			if p := *ptr(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *T, v any) {
			if v == nil {
				*ptr(r) = nil
				return
			}
			x := v.(time.Time)
			*ptr(r) = &x
		},
	}
}

func bitsOf[V any]() int {
	var v V
	return int(unsafe.Sizeof(v)) * 8
}
