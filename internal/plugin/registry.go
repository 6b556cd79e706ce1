// Package plugin maps plugin ids to generators and resolves a preset's
// plugins into the ordered list the generator engine applies.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
)

// Registry holds the generators available to this binary, keyed by plugin id.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]generator.Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]generator.Generator)}
}

// Register adds a generator for id.
func (r *Registry) Register(id string, gen generator.Generator) error {
	if gen == nil {
		return fmt.Errorf("cannot register nil generator")
	}
	if id == "" {
		return fmt.Errorf("cannot register generator with empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[id]; exists {
		return fmt.Errorf("plugin '%s' is already registered", id)
	}
	r.generators[id] = gen
	return nil
}

// Get returns the generator registered for id.
func (r *Registry) Get(id string) (generator.Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gen, ok := r.generators[id]
	return gen, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// List returns the registered ids sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.generators))
	for id := range r.generators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
