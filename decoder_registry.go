package typer

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrDecoderAlreadyRegistered  = errors.New("a decoder with this name for this source-type is already registered")
	ErrNoDecoder                 = errors.New("no registered decoder found for this source type")
	ErrMultipleDecodersAvailable = errors.New("multiple decoders available for this source type, use WithDecoder() to specify which one")
	ErrDecoderNotFound           = errors.New("specified decoder not found for this source type")
)

// DecoderRegistry selects a Decoder by the reflect.Type of the source.
//
// Multiple Decoders can be registered for each source type. If only one
// decoder is registered for a type, it will be used automatically. If
// several are (both the JSON and the YAML decoder take []byte), use
// WithDecoder() to pick one by name.
type DecoderRegistry struct {
	mu sync.RWMutex
	m  map[reflect.Type]map[string]Decoder // source type -> decoder name -> decoder
}

// DecoderRegistryContext is a registry curried with a decoder name.
type DecoderRegistryContext struct {
	registry    *DecoderRegistry
	decoderName string
}

func defaultDecoders() []Decoder {
	return []Decoder{
		NewJSONByteSliceDecoder(),
		NewJSONStringDecoder(),
		NewYAMLByteSliceDecoder(),
		NewStringAnyMapDecoder(),
		NewStringMapDecoder(),
		NewHTTPRequestDecoder(),
	}
}

type DecoderRegistryOpts struct {
	Decoders        []Decoder
	ExcludeDefaults bool
}

func NewDecoderRegistry(opts DecoderRegistryOpts) (*DecoderRegistry, error) {
	reg := &DecoderRegistry{
		m: make(map[reflect.Type]map[string]Decoder),
	}

	if !opts.ExcludeDefaults {
		for _, decoder := range defaultDecoders() {
			if err := reg.Register(decoder); err != nil {
				return nil, err
			}
		}
	}

	for _, decoder := range opts.Decoders {
		if err := reg.Register(decoder); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Register adds decoder under its source type and name.
func (reg *DecoderRegistry) Register(decoder Decoder) error {
	typ := decoder.SourceType()
	name := decoder.Name()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.m[typ] == nil {
		reg.m[typ] = make(map[string]Decoder)
	}
	if _, exists := reg.m[typ][name]; exists {
		return fmt.Errorf("%w: %s for %s", ErrDecoderAlreadyRegistered, name, typ)
	}

	reg.m[typ][name] = decoder
	return nil
}

// WithDecoder returns a context that decodes with the named decoder.
func (reg *DecoderRegistry) WithDecoder(decoderName string) *DecoderRegistryContext {
	return &DecoderRegistryContext{
		registry:    reg,
		decoderName: decoderName,
	}
}

// Decode decodes source with the decoder chosen for this context.
func (regCtx *DecoderRegistryContext) Decode(source any) (*Container, error) {
	decoder, err := regCtx.registry.getDecoderByName(source, regCtx.decoderName)
	if err != nil {
		return nil, err
	}
	return runDecoder(decoder, source)
}

// Decode decodes source with the only decoder registered for its type.
func (reg *DecoderRegistry) Decode(source any) (*Container, error) {
	decoder, err := reg.getDecoderByName(source, "")
	if err != nil {
		return nil, err
	}
	return runDecoder(decoder, source)
}

func runDecoder(decoder Decoder, source any) (*Container, error) {
	root, err := decoder.Decode(source)
	if err != nil {
		return nil, fmt.Errorf("failed to decode with %s: %w", decoder.Name(), err)
	}
	return root, nil
}

// getDecoderByName retrieves a specific decoder by name for the given
// source.
//
// No name provided: if there is only one decoder registered for the
// type, it returns that decoder. If several are, it returns
// ErrMultipleDecodersAvailable.
func (reg *DecoderRegistry) getDecoderByName(source any, decoderName string) (Decoder, error) {
	typ := reflect.TypeOf(source)

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	decodersForType, exists := reg.m[typ]
	if !exists || len(decodersForType) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoDecoder, typ)
	}

	if decoderName == "" {
		if len(decodersForType) > 1 {
			return nil, fmt.Errorf("%w: %v", ErrMultipleDecodersAvailable, typ)
		}
		for _, decoder := range decodersForType {
			return decoder, nil
		}
	}

	if decoder, found := decodersForType[decoderName]; found {
		return decoder, nil
	}
	return nil, fmt.Errorf("%w: %s for %v", ErrDecoderNotFound, decoderName, typ)
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _globalRegistry *DecoderRegistry = nil

func init() {
	var err error
	_globalRegistry, err = NewDecoderRegistry(DecoderRegistryOpts{})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize global decoder registry: %v", err))
	}
}

// RegisterDecoder registers a decoder with the global registry.
func RegisterDecoder(decoder Decoder) error {
	return _globalRegistry.Register(decoder)
}

// Decode decodes source using the global registry.
func Decode(source any) (*Container, error) {
	return _globalRegistry.Decode(source)
}

// WithDecoder returns a DecoderRegistryContext from the global registry.
func WithDecoder(decoderName string) *DecoderRegistryContext {
	return _globalRegistry.WithDecoder(decoderName)
}
