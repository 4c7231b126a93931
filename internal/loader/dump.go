package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/matprop/internal/expr"
	"github.com/vk/matprop/internal/property"
)

// fieldsOut is ordered mapping content produced by representers, so
// dumped nodes keep their declared attribute order.
type fieldsOut []field

type field struct {
	key string
	val any
}

// Dump serializes a document back to YAML, sending each property through
// its tag's representer.
func (l *Loader) Dump(doc *Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range doc.keys {
		child, err := l.encodeValue(doc.values[key])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			child)
	}
	return yaml.Marshal(root)
}

func (l *Loader) encodeValue(v any) (*yaml.Node, error) {
	tag := tagFor(v)
	if tag == "" {
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}

	h, ok := l.reg.Handler(tag)
	if !ok || h.Represent == nil {
		return nil, fmt.Errorf("representing %s: %w", tag, ErrNotImplemented)
	}
	content, err := h.Represent(v)
	if err != nil {
		return nil, err
	}

	fields, ok := content.(fieldsOut)
	if !ok {
		node := &yaml.Node{}
		if err := node.Encode(content); err != nil {
			return nil, err
		}
		node.Tag = tag
		return node, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: tag}
	for _, f := range fields {
		child, err := l.encodeValue(f.val)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			child)
	}
	return node, nil
}

// tagFor maps a constructed value back to its document tag; empty for
// plain values.
func tagFor(v any) string {
	switch v.(type) {
	case *property.Constant:
		return TagConstant
	case *property.Table:
		return TagTable
	case *property.Function:
		return TagFunction
	case *expr.Lambda:
		return TagLambda
	default:
		return ""
	}
}

func representConstant(v any) (any, error) {
	c, ok := v.(*property.Constant)
	if !ok {
		return nil, fmt.Errorf("representing %T as a constant", v)
	}
	var value any = []float64(c.Value())
	if len(c.Value()) == 1 {
		value = c.Value()[0]
	}
	return fieldsOut{
		{"name", c.Name()},
		{"unit", c.Unit()},
		{"symbol", c.Symbol()},
		{"value", value},
	}, nil
}

func representTable(v any) (any, error) {
	t, ok := v.(*property.Table)
	if !ok {
		return nil, fmt.Errorf("representing %T as a table", v)
	}
	return fieldsOut{
		{"name", t.Name()},
		{"arguments", t.Arguments()},
		{"units", t.Units()},
		{"symbols", t.Symbols()},
		{"defaults", t.Defaults()},
		{"values", t.Values()},
		{"method", t.Method()},
	}, nil
}

// representFunction fails deliberately: an analytic expression cannot be
// serialized back to document form (the lambda representer is a stub),
// and silently dropping it would corrupt the round trip.
func representFunction(v any) (any, error) {
	if _, ok := v.(*property.Function); !ok {
		return nil, fmt.Errorf("representing %T as a function", v)
	}
	return nil, fmt.Errorf("representing a function expression: %w", ErrNotImplemented)
}
