package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Constructor builds a domain object from the decoded content of a tagged
// document node: a map for mapping nodes, a slice for sequence nodes.
type Constructor func(ctx context.Context, raw any) (any, error)

// Representer extracts a domain object back into plain document content
// for serialization, the inverse of its Constructor.
type Representer func(v any) (any, error)

// Handler pairs the construction and serialization functions for one
// document tag.
type Handler struct {
	Construct Constructor
	Represent Representer
}

// Module is the interface a package implements to contribute its tag
// handlers to a registry.
type Module interface {
	Register(r *Registry)
}

// Registry holds the tag handlers for a single loader instance.
type Registry struct {
	handlers map[string]*Handler
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Register registers a handler for a document tag.
func (r *Registry) Register(tag string, h *Handler) {
	if _, exists := r.handlers[tag]; exists {
		panic(fmt.Sprintf("handler for tag %q already registered", tag))
	}
	if h == nil || h.Construct == nil {
		panic(fmt.Sprintf("handler for tag %q has no constructor", tag))
	}
	slog.Debug("Registering tag handler.", "tag", tag)
	r.handlers[tag] = h
}

// Handler looks up the handler for a tag.
func (r *Registry) Handler(tag string) (*Handler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
