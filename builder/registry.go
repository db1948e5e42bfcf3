package builder

import (
	"sync"

	"github.com/erraggy/oasgen/internal/maputil"
	"github.com/erraggy/oasgen/openapi"
)

// SchemaRegistry maps object type names to their synthesized schemas.
//
// A name is inserted as a placeholder by the first caller to claim it and is
// never removed. Claiming is one critical section, so concurrent synthesis
// of the same name traverses its fields exactly once.
type SchemaRegistry struct {
	mu      sync.Mutex
	schemas map[string]*openapi.Schema
	done    map[string]bool
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		schemas: make(map[string]*openapi.Schema),
		done:    make(map[string]bool),
	}
}

// acquire registers an empty object placeholder under name unless the name is
// already present. It reports whether the caller now owns the name and must
// populate it with complete.
func (r *SchemaRegistry) acquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[name]; ok {
		return false
	}
	r.schemas[name] = &openapi.Schema{Type: openapi.TypeObject}
	return true
}

// complete replaces the placeholder for name with the populated schema.
func (r *SchemaRegistry) complete(name string, s *openapi.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
	r.done[name] = true
}

// Lookup returns the schema registered under name. The second result is false
// when the name is absent; a placeholder still being populated is returned
// with complete set to false.
func (r *SchemaRegistry) Lookup(name string) (s *openapi.Schema, complete bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemas[name]
	if !ok {
		return nil, false
	}
	return s, r.done[name]
}

// Has reports whether name has been registered, placeholder or not.
func (r *SchemaRegistry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.schemas[name]
	return ok
}

// Len returns the number of registered names.
func (r *SchemaRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schemas)
}

// Names returns the registered names in sorted order.
func (r *SchemaRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maputil.SortedKeys(r.schemas)
}

// Snapshot returns every registered schema keyed by name in sorted order.
func (r *SchemaRegistry) Snapshot() *openapi.OrderedMap[*openapi.Schema] {
	out := openapi.NewOrderedMap[*openapi.Schema]()
	for _, name := range r.Names() {
		s, _ := r.Lookup(name)
		out.Set(name, s)
	}
	return out
}
