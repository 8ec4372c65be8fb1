package typer

import (
	"iter"
	"slices"
	"strconv"
)

// Key addresses one entry of a Container: either a Name or an Index.
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Name returns a string key.
func Name(name string) Key { return Key{name: name} }

// Index returns an integer key.
func Index(i int) Key { return Key{index: i, isIndex: true} }

func (k Key) IsIndex() bool { return k.isIndex }

// Name returns the string key, or "" for an integer key.
func (k Key) Name() string { return k.name }

// Index returns the integer key, or 0 for a string key.
func (k Key) Index() int { return k.index }

func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// Container is an ordered mapping from keys to values. It models both
// JSON objects and JSON arrays: an array is a container whose keys are
// Index(0)..Index(n-1).
//
// Keys iterate in insertion order. A nil *Container behaves as an empty
// container for every read.
type Container struct {
	keys   []Key
	values map[Key]Value
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{values: make(map[Key]Value)}
}

// ListOf builds a container keyed 0..n-1 from values.
func ListOf(values ...Value) *Container {
	c := NewContainer()
	for i, v := range values {
		c.Set(Index(i), v)
	}
	return c
}

// Set stores v under k and returns c for chaining. Overwriting an
// existing key keeps its original position.
//
// Set is meant for building a tree. Nothing in this package calls it
// on a container it was handed.
func (c *Container) Set(k Key, v Value) *Container {
	if c.values == nil {
		c.values = make(map[Key]Value)
	}
	if _, exists := c.values[k]; !exists {
		c.keys = append(c.keys, k)
	}
	c.values[k] = v
	return c
}

// Get returns the value stored under k.
func (c *Container) Get(k Key) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	v, ok := c.values[k]
	return v, ok
}

func (c *Container) Has(k Key) bool {
	_, ok := c.Get(k)
	return ok
}

func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns a copy of the keys in insertion order.
func (c *Container) Keys() []Key {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// All iterates entries in insertion order.
func (c *Container) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		if c == nil {
			return
		}
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}
