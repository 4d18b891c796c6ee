// Package tools maps capability names onto text-in/text-out
// implementations so the summarization pass can invoke them by name.
package tools

import (
	"context"
	"fmt"
	"strings"
)

// Tool is a capability exposed to the language model: it takes a free-text
// input and returns a free-text observation.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}

// Registry is a name → tool lookup table. Registration order is preserved
// so prompt catalogues are stable.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Catalogue renders the registered tools as "- name: description" lines for
// prompt inclusion.
func (r *Registry) Catalogue() string {
	var b strings.Builder
	for i, name := range r.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", name, r.tools[name].Description())
	}
	return b.String()
}
