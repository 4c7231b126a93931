package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/matprop/internal/ctxlog"
	"github.com/vk/matprop/internal/property"
	"github.com/vk/matprop/internal/registry"
	"github.com/vk/matprop/internal/units"
)

// ErrNotImplemented marks serialization paths that are intentionally
// stubbed rather than silently lossy.
var ErrNotImplemented = errors.New("not implemented")

// Document is one loaded property document: a top-level mapping from
// names to resolved values, some of which are properties.
type Document struct {
	values map[string]any
	keys   []string
}

// Keys returns the top-level names in document order.
func (d *Document) Keys() []string { return d.keys }

// Value returns the resolved value for a top-level name.
func (d *Document) Value(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Property returns the named top-level value if it is a property.
func (d *Document) Property(name string) (property.Property, bool) {
	p, ok := d.values[name].(property.Property)
	return p, ok
}

// Properties returns the names of all top-level properties, sorted.
func (d *Document) Properties() []string {
	var names []string
	for name, v := range d.values {
		if _, ok := v.(property.Property); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Loader resolves YAML documents through a tag-handler registry. A Loader
// is immutable after New and safe for concurrent use.
type Loader struct {
	reg *registry.Registry
}

// New builds a loader with the built-in tag handlers over the given unit
// registry, plus any extra handler modules.
func New(unitReg *units.Registry, extra ...registry.Module) *Loader {
	reg := registry.New()
	Builtin(unitReg).Register(reg)
	for _, m := range extra {
		m.Register(reg)
	}
	return &Loader{reg: reg}
}

// Load reads and resolves every document in a file.
func (l *Loader) Load(ctx context.Context, path string) ([]*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	docs, err := l.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded property documents.", "path", path, "documents", len(docs))
	return docs, nil
}

// Parse resolves every document in a byte stream.
func (l *Loader) Parse(ctx context.Context, data []byte) ([]*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*Document
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document %d: %w", len(docs)+1, err)
		}

		doc, err := l.document(ctx, &node)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents in input")
	}
	return docs, nil
}

func (l *Loader) document(ctx context.Context, node *yaml.Node) (*Document, error) {
	root := node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, fmt.Errorf("malformed document node")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping, got %s at line %d", kindName(root.Kind), root.Line)
	}

	doc := &Document{values: make(map[string]any, len(root.Content)/2)}
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val, err := l.resolve(ctx, root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		doc.values[key] = val
		doc.keys = append(doc.keys, key)
	}
	return doc, nil
}

// resolve walks a node tree depth-first, decoding plain YAML structure
// and dispatching custom-tagged nodes through the registry. Children
// resolve before their parent, so a tagged node nested inside another
// (a "!lambda" inside a "!function") reaches the outer constructor
// already built.
func (l *Loader) resolve(ctx context.Context, node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		return l.resolve(ctx, node.Alias)
	}

	tag := node.Tag
	custom := strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")

	var raw any
	switch node.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			v, err := l.resolve(ctx, node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[node.Content[i].Value] = v
		}
		raw = m
	case yaml.SequenceNode:
		s := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := l.resolve(ctx, child)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		raw = s
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("scalar at line %d: %w", node.Line, err)
		}
		raw = v
	default:
		return nil, fmt.Errorf("unsupported node kind %s at line %d", kindName(node.Kind), node.Line)
	}

	if !custom {
		return raw, nil
	}

	h, ok := l.reg.Handler(tag)
	if !ok {
		return nil, fmt.Errorf("unknown tag %s at line %d", tag, node.Line)
	}
	out, err := h.Construct(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s node at line %d: %w", tag, node.Line, err)
	}
	return out, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
