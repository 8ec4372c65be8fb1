package typer

import (
	"reflect"
)

// StringAnyMapDecoder decodes map[string]any through FromNative.
type StringAnyMapDecoder struct{}

func NewStringAnyMapDecoder() *StringAnyMapDecoder {
	return &StringAnyMapDecoder{}
}

func (md *StringAnyMapDecoder) SourceType() reflect.Type {
	return StringAnyMapType
}

func (md *StringAnyMapDecoder) Name() string {
	return StringAnyMapDecoderName
}

func (md *StringAnyMapDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, md.decode)
}

func (md *StringAnyMapDecoder) decode(source map[string]any) (*Container, error) {
	v, err := FromNative(source)
	if err != nil {
		return nil, err
	}
	return rootContainer(v)
}

// StringMapDecoder decodes map[string]string into a container of
// strings.
type StringMapDecoder struct{}

func NewStringMapDecoder() *StringMapDecoder {
	return &StringMapDecoder{}
}

func (md *StringMapDecoder) SourceType() reflect.Type {
	return StringMapType
}

func (md *StringMapDecoder) Name() string {
	return StringMapDecoderName
}

func (md *StringMapDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, md.decode)
}

func (md *StringMapDecoder) decode(source map[string]string) (*Container, error) {
	v, err := FromNative(source)
	if err != nil {
		return nil, err
	}
	return rootContainer(v)
}
