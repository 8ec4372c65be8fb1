package typer

import (
	"iter"
)

// Map is a container known to have only string keys. It is a view:
// Container returns the very container it was built from.
type Map struct {
	c *Container
}

func (m Map) Container() *Container { return m.c }

func (m Map) Len() int { return m.c.Len() }

func (m Map) Get(name string) (Value, bool) { return m.c.Get(Name(name)) }

// Keys returns the key names in insertion order.
func (m Map) Keys() []string {
	names := make([]string, 0, m.c.Len())
	for k := range m.c.All() {
		names = append(names, k.Name())
	}
	return names
}

func (m Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for k, v := range m.c.All() {
			if !yield(k.Name(), v) {
				return
			}
		}
	}
}

// AsMap narrows c to a Map, failing with ErrInvalidKeyType on the first
// integer key.
func AsMap(c *Container) (Map, error) {
	if err := AssertMap(c); err != nil {
		return Map{}, err
	}
	if c == nil {
		c = NewContainer()
	}
	return Map{c: c}, nil
}

// AsStringMap is AsMap for a value not yet known to be a container.
func AsStringMap(v Value) (Map, error) {
	c, err := AssertArray(v)
	if err != nil {
		return Map{}, err
	}
	return AsMap(c)
}

// AssertMap fails with ErrInvalidKeyType unless every key of c is a
// string.
func AssertMap(c *Container) error {
	for k := range c.All() {
		if k.IsIndex() {
			return &Error{
				Kind:   ErrInvalidKeyType,
				Root:   c,
				Reason: "key " + k.String() + " should be a string",
			}
		}
	}
	return nil
}

// IsMap reports whether v is a container with only string keys.
func IsMap(v Value) bool {
	c, ok := v.AsContainer()
	return ok && AssertMap(c) == nil
}

// AssertArray fails with ErrTypeMismatch unless v is a container.
func AssertArray(v Value) (*Container, error) {
	c, ok := v.AsContainer()
	if !ok {
		return nil, mismatch("container", v)
	}
	return c, nil
}

// AssertStringKeys returns c unchanged if all its keys are strings.
func AssertStringKeys(c *Container) (*Container, error) {
	if err := AssertMap(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AssertIntKeys returns c unchanged if all its keys are integers.
func AssertIntKeys(c *Container) (*Container, error) {
	for k := range c.All() {
		if !k.IsIndex() {
			return nil, &Error{
				Kind:   ErrInvalidKeyType,
				Root:   c,
				Reason: "key " + k.String() + " should be an integer",
			}
		}
	}
	return c, nil
}

// AssertList returns the values of c if its keys are exactly 0..n-1 in
// insertion order. Otherwise it fails with ErrMissingArrayKey naming
// the first key that is not the index expected at its position.
func AssertList(c *Container) ([]Value, error) {
	list := make([]Value, 0, c.Len())
	for k, v := range c.All() {
		want := Index(len(list))
		if k != want {
			return nil, &Error{
				Kind:   ErrMissingArrayKey,
				Root:   c,
				Reason: "list index " + want.String() + " is missing, found key " + k.String(),
			}
		}
		list = append(list, v)
	}
	return list, nil
}
