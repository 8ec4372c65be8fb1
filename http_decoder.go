package typer

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"slices"
	"strings"
)

var (
	__compTimeCheckImplementsDecoder Decoder = &HTTPRequestDecoder{}
)

// HTTPRequestDecoder decodes a request into a container of the form
//
//	[header => [...], query => [...], cookie => [...], body => ...]
//
// Each of header, query and cookie maps a name to its first value, with
// names sorted. The body is decoded as JSON when the request declares a
// JSON content type, or none, and is kept as a string otherwise. An
// empty body is null. Decoding consumes the request body.
type HTTPRequestDecoder struct{}

func NewHTTPRequestDecoder() *HTTPRequestDecoder {
	return &HTTPRequestDecoder{}
}

func (hd *HTTPRequestDecoder) SourceType() reflect.Type {
	return HTTPRequestType
}

func (hd *HTTPRequestDecoder) Name() string {
	return HTTPRequestDecoderName
}

func (hd *HTTPRequestDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, hd.decode)
}

func (hd *HTTPRequestDecoder) decode(request *http.Request) (*Container, error) {
	if request == nil {
		return nil, fmt.Errorf("%w: nil *http.Request", ErrDecode)
	}

	body, err := hd.decodeBody(request)
	if err != nil {
		return nil, err
	}

	root := NewContainer().
		Set(Name(HTTPHeaderKey), ContainerOf(hd.headers(request))).
		Set(Name(HTTPQueryKey), ContainerOf(hd.query(request))).
		Set(Name(HTTPCookieKey), ContainerOf(hd.cookies(request))).
		Set(Name(HTTPBodyKey), body)
	return root, nil
}

func (hd *HTTPRequestDecoder) headers(request *http.Request) *Container {
	return firstValues(request.Header)
}

func (hd *HTTPRequestDecoder) query(request *http.Request) *Container {
	if request.URL == nil {
		return NewContainer()
	}
	return firstValues(request.URL.Query())
}

func (hd *HTTPRequestDecoder) cookies(request *http.Request) *Container {
	byName := make(map[string]string)
	for _, cookie := range request.Cookies() {
		if _, seen := byName[cookie.Name]; !seen {
			byName[cookie.Name] = cookie.Value
		}
	}
	c := NewContainer()
	for _, name := range sortedKeys(byName) {
		c.Set(Name(name), Str(byName[name]))
	}
	return c
}

func (hd *HTTPRequestDecoder) decodeBody(request *http.Request) (Value, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return Null(), nil
	}

	raw, err := io.ReadAll(request.Body)
	if err != nil {
		return Value{}, fmt.Errorf("%w: failed to read request body: %w", ErrDecode, err)
	}
	if len(raw) == 0 {
		return Null(), nil
	}

	if !isJSONContentType(request.Header.Get("Content-Type")) {
		return Str(string(raw)), nil
	}
	v, err := DecodeJSON(raw)
	if err != nil {
		return Value{}, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ContentTypeDelimiter)[0])
	}
	return mediaType == ContentTypeApplicationJSON || strings.HasSuffix(mediaType, "+json")
}

func firstValues(values map[string][]string) *Container {
	names := make([]string, 0, len(values))
	for name, vs := range values {
		if len(vs) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	c := NewContainer()
	for _, name := range names {
		c.Set(Name(name), Str(values[name][0]))
	}
	return c
}
