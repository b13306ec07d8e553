package ui

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-medsite/pkg/render/template"
)

// Renderer writes one component into buf. props is the component's typed
// props struct, such as ButtonProps.
type Renderer func(ctx context.Context, buf *bytes.Buffer, props any, data ComponentData) error

// ComponentData is what the library hands every Renderer.
type ComponentData struct {
	Template    rendertemplate.TemplateRenderer
	Partials    map[string]string
	Images      ImageResolver
	RenderChild func(ctx context.Context, name string, props any) (string, error)
}

// Script is a script tag the page layout emits once when a component that
// needs it was rendered.
type Script struct {
	Src    string
	Type   string
	Inline string
	Async  bool
	Defer  bool
	Module bool
}

// Descriptor is a registered component: how it renders and which page assets
// it depends on.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

func (d Descriptor) clone() Descriptor {
	d.Stylesheets = slices.Clone(d.Stylesheets)
	d.Scripts = slices.Clone(d.Scripts)
	return d
}

// Registry maps component names to descriptors. Names are case-insensitive.
// Reads hand out copies, so callers cannot change a registered descriptor
// without going through Register.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// NewRegistry returns an empty registry. Most callers want NewDefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone copies the registry. The library clones registries passed to
// WithRegistry so later registrations by the caller do not reach pages that
// are already rendering.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &Registry{components: make(map[string]Descriptor, len(r.components))}
	for name, descriptor := range r.components {
		out.components[name] = descriptor.clone()
	}
	return out
}

// Register adds or replaces the component called name.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	name = componentKey(name)
	switch {
	case name == "":
		return fmt.Errorf("ui: component name is required")
	case descriptor.Renderer == nil:
		return fmt.Errorf("ui: renderer for %q is nil", name)
	}

	descriptor.Name = name
	r.mu.Lock()
	r.components[name] = descriptor.clone()
	r.mu.Unlock()
	return nil
}

// MustRegister is Register for the built-in components; it panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor looks up a component.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.components[componentKey(name)]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	return descriptor.clone(), true
}

// Assets lists the stylesheets and scripts the named components need, each
// once, in the order the components were named. Unknown names are skipped.
func (r *Registry) Assets(names []string) ([]string, []Script) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		stylesheets []string
		scripts     []Script
	)
	for _, name := range names {
		descriptor, ok := r.components[componentKey(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href != "" && !slices.Contains(stylesheets, href) {
				stylesheets = append(stylesheets, href)
			}
		}
		for _, script := range descriptor.Scripts {
			if !slices.ContainsFunc(scripts, script.sameAs) {
				scripts = append(scripts, script)
			}
		}
	}
	return stylesheets, scripts
}

// sameAs reports whether two scripts would load the same code.
func (s Script) sameAs(other Script) bool {
	if s.Src != "" || other.Src != "" {
		return s.Src == other.Src
	}
	return s.Inline == other.Inline
}

func componentKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
