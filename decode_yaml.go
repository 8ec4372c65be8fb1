package typer

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes the first document of a YAML stream into a Value.
// Mapping keys keep their document order. Keys tagged !!int become
// Index keys, every other scalar key becomes a Name key. An empty
// document decodes to Null.
//
// Merge keys (<<) copy the entries of the merged mappings that the
// mapping does not define itself. An anchored node is decoded once and
// every alias to it shares the resulting Value.
func DecodeYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	w := &yamlWalker{anchors: make(map[*yaml.Node]Value)}
	return w.walk(&doc, 0)
}

// maxYAMLDepth bounds nesting.
const maxYAMLDepth = 512

type yamlWalker struct {
	anchors map[*yaml.Node]Value
}

func (w *yamlWalker) walk(n *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Value{}, fmt.Errorf("%w: YAML nesting exceeds %d levels", ErrDecode, maxYAMLDepth)
	}
	if v, ok := w.anchors[n]; ok {
		return v, nil
	}

	v, err := w.convert(n, depth)
	if err != nil {
		return Value{}, err
	}
	if n.Anchor != "" {
		w.anchors[n] = v
	}
	return v, nil
}

func (w *yamlWalker) convert(n *yaml.Node, depth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return w.walk(n.Content[0], depth+1)
	case yaml.AliasNode:
		return w.walk(n.Alias, depth+1)
	case yaml.SequenceNode:
		c := NewContainer()
		for i, item := range n.Content {
			v, err := w.walk(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			c.Set(Index(i), v)
		}
		return ContainerOf(c), nil
	case yaml.MappingNode:
		return w.mapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, fmt.Errorf("%w: unsupported YAML node kind %d at line %d", ErrDecode, n.Kind, n.Line)
	}
}

func (w *yamlWalker) mapping(n *yaml.Node, depth int) (Value, error) {
	explicit := make(map[Key]struct{})
	for i := 0; i+1 < len(n.Content); i += 2 {
		if isMergeKey(n.Content[i]) {
			continue
		}
		k, err := yamlKey(n.Content[i])
		if err != nil {
			return Value{}, err
		}
		explicit[k] = struct{}{}
	}

	c := NewContainer()
	for i := 0; i+1 < len(n.Content); i += 2 {
		if isMergeKey(n.Content[i]) {
			if err := w.merge(c, explicit, n.Content[i+1], depth); err != nil {
				return Value{}, err
			}
			continue
		}
		k, err := yamlKey(n.Content[i])
		if err != nil {
			return Value{}, err
		}
		v, err := w.walk(n.Content[i+1], depth+1)
		if err != nil {
			return Value{}, err
		}
		c.Set(k, v)
	}
	return ContainerOf(c), nil
}

// merge copies into c the entries of the mapping, or sequence of
// mappings, at src. Keys already in c or written explicitly in the
// mapping win, and earlier mappings of a sequence win over later ones.
func (w *yamlWalker) merge(c *Container, explicit map[Key]struct{}, src *yaml.Node, depth int) error {
	target := src
	if target.Kind == yaml.AliasNode {
		target = target.Alias
	}

	var sources []*yaml.Node
	switch target.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		sources = target.Content
	default:
		return fmt.Errorf("%w: merge value at line %d is not a mapping", ErrDecode, src.Line)
	}

	for _, source := range sources {
		v, err := w.walk(source, depth+1)
		if err != nil {
			return err
		}
		from, ok := v.AsContainer()
		if !ok || !isMappingNode(source) {
			return fmt.Errorf("%w: merge value at line %d is not a mapping", ErrDecode, source.Line)
		}
		for k, item := range from.All() {
			if _, defined := explicit[k]; defined || c.Has(k) {
				continue
			}
			c.Set(k, item)
		}
	}
	return nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func isMappingNode(n *yaml.Node) bool {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n.Kind == yaml.MappingNode
}

func yamlKey(n *yaml.Node) (Key, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return Key{}, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrDecode, n.Line)
	}
	if n.ShortTag() == "!!int" {
		var i int
		if err := n.Decode(&i); err == nil {
			return Index(i), nil
		}
	}
	return Name(n.Value), nil
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return Float(f), nil
	default:
		return Str(n.Value), nil
	}
}

type YAMLByteSliceDecoder struct{}

func NewYAMLByteSliceDecoder() *YAMLByteSliceDecoder {
	return &YAMLByteSliceDecoder{}
}

func (yd *YAMLByteSliceDecoder) SourceType() reflect.Type {
	return ByteSliceType
}

func (yd *YAMLByteSliceDecoder) Name() string {
	return YAMLByteSliceDecoderName
}

func (yd *YAMLByteSliceDecoder) Decode(source any) (*Container, error) {
	return DecodeTypeErased(source, yd.decode)
}

func (yd *YAMLByteSliceDecoder) decode(source []byte) (*Container, error) {
	v, err := DecodeYAML(source)
	if err != nil {
		return nil, err
	}
	return rootContainer(v)
}
