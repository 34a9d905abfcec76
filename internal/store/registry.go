package store

import (
	"fmt"

	"github.com/cargohub/cargohub/internal/entity"
)

// Collection is the kind-agnostic view of a store that the registry and
// the cascade-delete validator work against.
type Collection interface {
	Kind() entity.Kind
	Lock()
	Unlock()
	RLock()
	RUnlock()
	Load() error
	Save() error
}

// Registry tracks every store in kind-declaration order. Cross-store
// workflows (transfer commit, cascade delete) acquire their locks through
// Lock so that any two workflows touching the same stores always lock in
// the same order.
type Registry struct {
	order []entity.Kind
	byKind map[entity.Kind]Collection
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[entity.Kind]Collection)}
}

// Add registers a store. Registration order fixes the global lock and
// cascade-report ordering.
func (r *Registry) Add(c Collection) error {
	kind := c.Kind()
	if _, dup := r.byKind[kind]; dup {
		return fmt.Errorf("registry: duplicate store for kind %q", kind)
	}
	r.order = append(r.order, kind)
	r.byKind[kind] = c
	return nil
}

// Collection returns the registered store for a kind.
func (r *Registry) Collection(kind entity.Kind) (Collection, bool) {
	c, ok := r.byKind[kind]
	return c, ok
}

// LoadAll loads every registered store, in registration order.
func (r *Registry) LoadAll() error {
	for _, kind := range r.order {
		if err := r.byKind[kind].Load(); err != nil {
			return err
		}
	}
	return nil
}

// Lock write-locks the given kinds in registration order and returns the
// release function. Duplicate kinds are collapsed. Holding these locks,
// callers use the stores' *Locked methods only.
func (r *Registry) Lock(kinds ...entity.Kind) func() {
	locked := r.inOrder(kinds)
	for _, c := range locked {
		c.Lock()
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

// RLock is Lock for read-only multi-store sections.
func (r *Registry) RLock(kinds ...entity.Kind) func() {
	locked := r.inOrder(kinds)
	for _, c := range locked {
		c.RLock()
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].RUnlock()
		}
	}
}

func (r *Registry) inOrder(kinds []entity.Kind) []Collection {
	want := make(map[entity.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	out := make([]Collection, 0, len(want))
	for _, kind := range r.order {
		if want[kind] {
			out = append(out, r.byKind[kind])
		}
	}
	return out
}
