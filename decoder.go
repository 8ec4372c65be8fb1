package typer

import (
	"fmt"
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Decoder Interface
///////////////////////////////////////////////////////////////////////////////

// Decoder turns one kind of raw source into a root container that the
// getters can traverse.
//
// # The following are implemented by default:
//   - JSONByteSliceDecoder: []byte holding JSON
//   - JSONStringDecoder: string holding JSON
//   - YAMLByteSliceDecoder: []byte holding YAML
//   - StringAnyMapDecoder: map[string]any, e.g. from encoding/json
//   - StringMapDecoder: map[string]string
//   - HTTPRequestDecoder: *http.Request headers, query, cookies and body
type Decoder interface {
	// Decode converts source into a container. Sources whose top level
	// value is not a container fail with ErrShapeMismatch.
	Decode(source any) (*Container, error)
	// SourceType returns the reflect.Type of the source this decoder works with
	SourceType() reflect.Type
	// Name returns a unique identifier for this decoder within its source type
	Name() string
}

// DecodeTypeErased asserts source to S before handing it to decode.
// Decoder implementations use it to type their Decode method.
func DecodeTypeErased[S any](source any, decode func(source S) (*Container, error)) (*Container, error) {
	typed, ok := source.(S)
	if !ok {
		return nil, fmt.Errorf("%w: expected source type %T, got %T", ErrDecode, *new(S), source)
	}
	return decode(typed)
}

// rootContainer unwraps a decoded top level value.
func rootContainer(v Value) (*Container, error) {
	c, ok := v.AsContainer()
	if !ok {
		return nil, newError(ErrShapeMismatch, "decoded top level value is %s, not a container", TypeName(v))
	}
	return c, nil
}
