package typer

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// FromNative converts a Go value, typically the output of
// encoding/json into an `any`, into a Value.
//
// Currently supports:
//   - nil, bool, string, json.Number
//   - every int, uint and float width
//   - []any, []string and []Value as lists
//   - map[string]any, map[string]string and map[string]Value, with keys sorted
//   - map[int]any, with keys sorted
//   - *Container and Value, passed through
//
// Anything else becomes an Opaque value. A native structure that
// contains itself fails with ErrEncoding.
func FromNative(data any) (Value, error) {
	return fromNative(data, make(map[nativeRef]struct{}))
}

func fromNative(data any, active map[nativeRef]struct{}) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return d, nil
	case *Container:
		return ContainerOf(d), nil
	case bool:
		return Bool(d), nil
	case string:
		return Str(d), nil
	case int:
		return Int(int64(d)), nil
	case int8:
		return Int(int64(d)), nil
	case int16:
		return Int(int64(d)), nil
	case int32:
		return Int(int64(d)), nil
	case int64:
		return Int(d), nil
	case uint:
		return fromUint(uint64(d))
	case uint8:
		return Int(int64(d)), nil
	case uint16:
		return Int(int64(d)), nil
	case uint32:
		return Int(int64(d)), nil
	case uint64:
		return fromUint(d)
	case float32:
		return Float(float64(d)), nil
	case float64:
		return Float(d), nil
	case json.Number:
		if n, err := strconv.ParseInt(string(d), 10, 64); err == nil {
			return Int(n), nil
		}
		f, err := d.Float64()
		if err != nil {
			return Value{}, newError(ErrInvalidValue, "invalid json.Number %q", string(d))
		}
		return Float(f), nil
	case []string:
		c := NewContainer()
		for i, s := range d {
			c.Set(Index(i), Str(s))
		}
		return ContainerOf(c), nil
	case []Value:
		return ContainerOf(ListOf(d...)), nil
	case map[string]string:
		c := NewContainer()
		for _, k := range sortedKeys(d) {
			c.Set(Name(k), Str(d[k]))
		}
		return ContainerOf(c), nil
	case map[string]Value:
		c := NewContainer()
		for _, k := range sortedKeys(d) {
			c.Set(Name(k), d[k])
		}
		return ContainerOf(c), nil
	case []any:
		return nested(d, active, func() (*Container, error) {
			c := NewContainer()
			for i, item := range d {
				v, err := fromNative(item, active)
				if err != nil {
					return nil, err
				}
				c.Set(Index(i), v)
			}
			return c, nil
		})
	case map[string]any:
		return nested(d, active, func() (*Container, error) {
			c := NewContainer()
			for _, k := range sortedKeys(d) {
				v, err := fromNative(d[k], active)
				if err != nil {
					return nil, err
				}
				c.Set(Name(k), v)
			}
			return c, nil
		})
	case map[int]any:
		return nested(d, active, func() (*Container, error) {
			c := NewContainer()
			for _, k := range sortedKeys(d) {
				v, err := fromNative(d[k], active)
				if err != nil {
					return nil, err
				}
				c.Set(Index(k), v)
			}
			return c, nil
		})
	}

	return Opaque(data), nil
}

// nativeRef identifies a map or slice header; the length keeps a slice
// apart from its own prefixes.
type nativeRef struct {
	ptr uintptr
	n   int
}

// nested guards the conversion of a map or slice against cycles by
// tracking the ones currently being converted.
func nested(ref any, active map[nativeRef]struct{}, convert func() (*Container, error)) (Value, error) {
	rv := reflect.ValueOf(ref)
	id := nativeRef{ptr: rv.Pointer(), n: rv.Len()}
	if id.ptr != 0 {
		if _, cyclic := active[id]; cyclic {
			return Value{}, newError(ErrEncoding, "could not convert cyclic %T", ref)
		}
		active[id] = struct{}{}
		defer delete(active, id)
	}
	c, err := convert()
	if err != nil {
		return Value{}, err
	}
	return ContainerOf(c), nil
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, newError(ErrOutOfRange, "unsigned integer %d overflows int64", u)
	}
	return Int(int64(u)), nil
}

func sortedKeys[K string | int, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MustFromNative is like FromNative but panics on error.
func MustFromNative(data any) Value {
	v, err := FromNative(data)
	if err != nil {
		panic(fmt.Sprintf("typer: %v", err))
	}
	return v
}
