package typer

import (
	"fmt"
)

// Kind is the closed set of shapes a Value can take.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindContainer
	KindOpaque
)

// String returns the printable name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindContainer:
		return "container"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single node of a loosely-typed tree.
//
// The zero Value is Null. Values are immutable; the only mutable part
// is the *Container a container value points to, and this package never
// writes through it.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	c    *Container
	o    any
}

// Null returns the explicit null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// ContainerOf wraps a container. A nil container is wrapped as an
// empty one.
func ContainerOf(c *Container) Value {
	if c == nil {
		c = NewContainer()
	}
	return Value{kind: KindContainer, c: c}
}

// Opaque wraps an arbitrary Go value that has no dedicated kind.
// Values implementing fmt.Stringer are displayed through String(),
// everything else through encoding/json.
func Opaque(o any) Value {
	if o == nil {
		return Null()
	}
	return Value{kind: KindOpaque, o: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsContainer() (*Container, bool) { return v.c, v.kind == KindContainer }

func (v Value) AsOpaque() (any, bool) { return v.o, v.kind == KindOpaque }

// String renders the value with Stringify, falling back to a
// placeholder when the value cannot be represented.
func (v Value) String() string {
	s, err := Stringify(v)
	if err != nil {
		return unrepresentable
	}
	return s
}

// TypeName names the type of v for diagnostics. Opaque values report
// their Go type. Containers are named "container" whether they hold
// names, indexes or both; there is no separate "array" or "map" name.
func TypeName(v Value) string {
	if v.kind == KindOpaque {
		return fmt.Sprintf("%T", v.o)
	}
	return v.kind.String()
}
