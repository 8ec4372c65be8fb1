// Package typer provides strict, typed access into loosely-typed
// nested data such as decoded JSON or YAML.
//
// Data is held as a tree of [Value]s. A Value is one of null, bool,
// int, float, string, container or opaque. A [Container] is an ordered
// mapping from [Key]s (a string [Name] or an integer [Index]) to Values,
// so it models JSON objects and JSON arrays alike.
//
// Trees are usually built by a decoder:
//   - DecodeJSON / DecodeJSONString: JSON, keeping object key order
//   - DecodeYAML: YAML, keeping mapping key order
//   - FromNative: Go values such as the map[string]any produced by
//     encoding/json
//   - Decode: picks a registered [Decoder] by source type, including
//     one for *http.Request
//
// # Traversal
//
// [Resolve] walks a key path and distinguishes three outcomes: a value
// was found, the path is absent, or a step landed on something that is
// not a container (ErrShapeMismatch). [Require] turns absence into
// ErrMissingKey, [Exists] reports presence.
//
// # Typed getters
//
// Every Get* function returns (value, ok, err). ok is false when the
// path is absent or holds an explicit null; every other failure is an
// error. Every GetRequired* function returns (value, err) and also fails
// on absence (ErrMissingKey) and on null (ErrNull).
//
//	root, _ := typer.Decode(`{"user": {"id": "42", "tags": ["a"]}}`)
//	id, err := typer.GetRequiredPositiveInt(root, typer.Name("user"), typer.Name("id"))
//	tags, ok, err := typer.GetList(root, typer.Name("user"), typer.Name("tags"))
//
// Integer getters accept integers and canonical decimal strings only:
// "42", "0" and "-5" are accepted, "042", "+1" and " 1" are not.
// GetFloat is lenient on purpose: a string without a leading number
// yields 0.
//
// # Errors
//
// Traversal and conversion failures are *Error values carrying the key
// path and the root container. Their Kind is one of the Err* kinds, and
// refinements such as ErrNull also match ErrInvalidValue. Path parsing
// and decoding failures are wrapped errors matching ErrInvalidPath,
// ErrDecode or one of the registry errors.
package typer
