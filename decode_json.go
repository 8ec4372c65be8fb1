package typer

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/tidwall/gjson"
)

// DecodeJSON decodes a JSON document into a Value. Object keys keep
// their document order. Numbers written as integers that fit in int64
// become Int values, every other number becomes a Float.
//
// Duplicate object keys keep the position of their first occurrence
// and the value of their last.
func DecodeJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("%w: invalid JSON", ErrDecode)
	}
	return fromGJSON(gjson.ParseBytes(data)), nil
}

// DecodeJSONString is DecodeJSON for a string document.
func DecodeJSONString(data string) (Value, error) {
	if !gjson.Valid(data) {
		return Value{}, fmt.Errorf("%w: invalid JSON", ErrDecode)
	}
	return fromGJSON(gjson.Parse(data)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.String:
		return Str(r.Str)
	case gjson.Number:
		if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return Int(n)
		}
		return Float(r.Num)
	}

	c := NewContainer()
	switch {
	case r.IsArray():
		i := 0
		r.ForEach(func(_, item gjson.Result) bool {
			c.Set(Index(i), fromGJSON(item))
			i++
			return true
		})
	case r.IsObject():
		r.ForEach(func(key, item gjson.Result) bool {
			c.Set(Name(key.Str), fromGJSON(item))
			return true
		})
	}
	return ContainerOf(c)
}

type JSONByteSliceDecoder struct{}

func NewJSONByteSliceDecoder() *JSONByteSliceDecoder {
	return &JSONByteSliceDecoder{}
}

func (jd *JSONByteSliceDecoder) SourceType() reflect.Type {
	return ByteSliceType
}

func (jd *JSONByteSliceDecoder) Name() string {
	return JSONByteSliceDecoderName
}

func (jd *JSONByteSliceDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, jd.decode)
}

func (jd *JSONByteSliceDecoder) decode(source []byte) (*Container, error) {
	v, err := DecodeJSON(source)
	if err != nil {
		return nil, err
	}
	return rootContainer(v)
}

type JSONStringDecoder struct{}

func NewJSONStringDecoder() *JSONStringDecoder {
	return &JSONStringDecoder{}
}

func (jd *JSONStringDecoder) SourceType() reflect.Type {
	return StringType
}

func (jd *JSONStringDecoder) Name() string {
	return JSONStringDecoderName
}

func (jd *JSONStringDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, jd.decode)
}

func (jd *JSONStringDecoder) decode(source string) (*Container, error) {
	v, err := DecodeJSONString(source)
	if err != nil {
		return nil, err
	}
	return rootContainer(v)
}
