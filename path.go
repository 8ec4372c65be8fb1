package typer

import (
	"fmt"
	"strings"

	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"
)

// KeyPath is an ordered sequence of keys leading from a root container
// to a value.
type KeyPath []Key

// String joins the keys with PathSeparator.
func (p KeyPath) String() string {
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = k.String()
	}
	return strings.Join(parts, PathSeparator)
}

// NewPath builds a KeyPath from strings, ints and Keys.
func NewPath(parts ...any) (KeyPath, error) {
	path := make(KeyPath, 0, len(parts))
	for i, part := range parts {
		switch p := part.(type) {
		case string:
			path = append(path, Name(p))
		case int:
			if p < 0 {
				return nil, fmt.Errorf("%w: negative index %d at position %d", ErrInvalidPath, p, i)
			}
			path = append(path, Index(p))
		case int64:
			if p < 0 {
				return nil, fmt.Errorf("%w: negative index %d at position %d", ErrInvalidPath, p, i)
			}
			path = append(path, Index(int(p)))
		case Key:
			path = append(path, p)
		default:
			return nil, fmt.Errorf("%w: unsupported key type %T at position %d", ErrInvalidPath, part, i)
		}
	}
	return path, nil
}

// MustPath is like NewPath but panics on error.
func MustPath(parts ...any) KeyPath {
	path, err := NewPath(parts...)
	if err != nil {
		panic(err)
	}
	return path
}

// ParsePath parses a singular JSONPath query such as
// `$.users[0]['display name']` into a KeyPath. Only child segments with
// a single name or non-negative index selector are accepted.
func ParsePath(expr string) (KeyPath, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	segments := p.Query().Segments()
	path := make(KeyPath, 0, len(segments))
	for _, seg := range segments {
		if seg.IsDescendant() {
			return nil, fmt.Errorf("%w: descendant segment in %q", ErrInvalidPath, expr)
		}
		selectors := seg.Selectors()
		if len(selectors) != 1 {
			return nil, fmt.Errorf("%w: segment with %d selectors in %q", ErrInvalidPath, len(selectors), expr)
		}
		switch sel := selectors[0].(type) {
		case spec.Name:
			path = append(path, Name(string(sel)))
		case spec.Index:
			if sel < 0 {
				return nil, fmt.Errorf("%w: negative index %d in %q", ErrInvalidPath, int(sel), expr)
			}
			path = append(path, Index(int(sel)))
		default:
			return nil, fmt.Errorf("%w: unsupported selector %T in %q", ErrInvalidPath, sel, expr)
		}
	}
	return path, nil
}

///////////////////////////////////////////////////////////////////////////////
// Traversal
///////////////////////////////////////////////////////////////////////////////

// Resolve walks path from root. It reports false when the final (or an
// intermediate) key is missing from a container, and fails with
// ErrShapeMismatch when a step lands on a value that is not a container.
// An empty path resolves to root itself.
func Resolve(root *Container, path ...Key) (Value, bool, error) {
	return walk(root, path, false)
}

// Require is Resolve with absence reported as ErrMissingKey.
func Require(root *Container, path ...Key) (Value, error) {
	v, _, err := walk(root, path, true)
	return v, err
}

// Exists reports whether path reaches a value, null included. A shape
// mismatch is still an error.
func Exists(root *Container, path ...Key) (bool, error) {
	_, found, err := walk(root, path, false)
	if err != nil {
		return false, err
	}
	return found, nil
}

func walk(root *Container, path KeyPath, required bool) (Value, bool, error) {
	current := ContainerOf(root)
	for _, k := range path {
		c, ok := current.AsContainer()
		if !ok {
			return Value{}, false, &Error{
				Kind:   ErrShapeMismatch,
				Path:   path,
				Root:   root,
				Reason: fmt.Sprintf("key %s (of %s) should be a container, found %s", k, path, TypeName(current)),
			}
		}
		next, found := c.Get(k)
		if !found {
			if required {
				return Value{}, false, &Error{
					Kind:   ErrMissingKey,
					Path:   path,
					Root:   root,
					Reason: fmt.Sprintf("key %s (of %s) not found", k, path),
				}
			}
			return Value{}, false, nil
		}
		current = next
	}
	return current, true, nil
}
