package typer

import (
	"errors"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Error kinds of traversal and conversion failures. Each such *Error
// matches its kind with errors.Is; a refinement below also matches
// ErrInvalidValue.
var (
	ErrShapeMismatch   = errors.New("value is not a container")
	ErrMissingKey      = errors.New("key not found")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidKeyType  = errors.New("invalid key type")
	ErrMissingArrayKey = errors.New("missing list index")
	ErrEncoding        = errors.New("could not encode value")
)

// Refinements of ErrInvalidValue.
var (
	ErrNull         = fmt.Errorf("%w: value is null", ErrInvalidValue)
	ErrNonCanonical = fmt.Errorf("%w: non-canonical integer string", ErrInvalidValue)
	ErrOutOfRange   = fmt.Errorf("%w: integer out of range", ErrInvalidValue)
	ErrNegative     = fmt.Errorf("%w: integer is negative", ErrInvalidValue)
	ErrNotPositive  = fmt.Errorf("%w: integer is not positive", ErrInvalidValue)
)

// Path parsing and decoding failures wrap these with fmt.Errorf.
var (
	ErrInvalidPath = errors.New("invalid key path")
	ErrDecode      = errors.New("could not decode source")
)

const unrepresentable = "<unrepresentable>"

// Error describes a failure while traversing or converting a tree.
//
// Path and Root are set when the failure happened under a key path;
// static assertions on a container leave Path empty and set Root to
// the asserted container. Root is rendered lazily.
type Error struct {
	Kind   error
	Path   KeyPath
	Root   *Container
	Reason string
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Reason)
	if len(e.Path) > 0 {
		sb.WriteString(" at ")
		sb.WriteString(e.Path.String())
	}
	if e.Root != nil {
		sb.WriteString(" in ")
		sb.WriteString(renderRoot(e.Root))
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// annotate attaches the traversal context to a conversion error that
// does not carry a path yet. The traversal root replaces whatever
// container the conversion reported.
func annotate(err error, root *Container, path KeyPath) error {
	var e *Error
	if !errors.As(err, &e) || e.Path != nil {
		return err
	}
	annotated := *e
	annotated.Path = path
	annotated.Root = root
	return &annotated
}

func renderRoot(root *Container) string {
	s, err := Stringify(ContainerOf(root))
	if err != nil {
		return unrepresentable
	}
	return s
}
