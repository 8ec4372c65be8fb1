package typer

import (
	"net/http"
	"reflect"
)

// PathSeparator joins the keys of a KeyPath for display.
const PathSeparator = "."

// Decoder Name constants for built in decoders.
const (
	HTTPRequestDecoderName   = "http-request-decoder"
	JSONByteSliceDecoderName = "json-[]byte-decoder"
	JSONStringDecoderName    = "json-string-decoder"
	YAMLByteSliceDecoderName = "yaml-[]byte-decoder"
	StringMapDecoderName     = "stringmap-decoder"
	StringAnyMapDecoderName  = "map-decoder"
)

// Top level keys of a decoded HTTP request.
const (
	HTTPHeaderKey = "header"
	HTTPQueryKey  = "query"
	HTTPCookieKey = "cookie"
	HTTPBodyKey   = "body"
)

// Mime Type constants for content types.
const (
	ContentTypeApplicationJSON string = "application/json"
	ContentTypeDelimiter              = ";"
)

// reflect.TypeOf constants for source types
var (
	HTTPRequestType  = reflect.TypeOf((*http.Request)(nil))
	ByteSliceType    = reflect.TypeOf([]byte{})
	StringType       = reflect.TypeOf("")
	StringMapType    = reflect.TypeOf(map[string]string{})
	StringAnyMapType = reflect.TypeOf(map[string]any{})
)
