package refint

import (
	"fmt"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
)

// Report is the impact-analysis result of a dry-run delete. A dry run is
// informational: it never mutates anything, whatever the dependency graph
// looks like.
type Report struct {
	Deletable bool        `json:"deletable"`
	Blocking  []Dependent `json:"blocking,omitempty"`
}

// BlockedError rejects a hard delete that would strand dependents.
type BlockedError struct {
	Kind     entity.Kind
	ID       int64
	Blocking []Dependent
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s %d has %d dependent record(s)", e.Kind, e.ID, len(e.Blocking))
}

// Unwrap maps the error onto the Conflict class.
func (e *BlockedError) Unwrap() error { return shared.ErrConflict }

// Target is the slice of a typed store the validator needs to delete one
// kind: existence, soft delete and persistence, all under held locks.
type Target struct {
	Kind       entity.Kind
	Exists     func(id int64) bool
	SoftDelete func(id int64) (any, error)
	Save       func() error
}

// TargetFor adapts a typed store into a Target.
func TargetFor[T any, PT interface {
	store.Record
	*T
}](st *store.Store[T, PT]) Target {
	return Target{
		Kind:   st.Kind(),
		Exists: st.ExistsLocked,
		SoftDelete: func(id int64) (any, error) {
			return st.SoftDeleteLocked(id)
		},
		Save: st.SaveLocked,
	}
}

// Validator guards every deletion with a referential-integrity scan.
type Validator struct {
	registry *store.Registry
	index    *Index
	targets  map[entity.Kind]Target
}

// NewValidator wires the validator to the registry and index.
func NewValidator(registry *store.Registry, index *Index) *Validator {
	return &Validator{
		registry: registry,
		index:    index,
		targets:  make(map[entity.Kind]Target),
	}
}

// Register adds the deletion adapter for one kind.
func (v *Validator) Register(t Target) {
	v.targets[t.Kind] = t
}

// Delete performs the cascade-checked deletion of one record. With
// dryRun the outcome is a Report and nothing is mutated; without it the
// record is soft-deleted unless dependents block it, in which case a
// BlockedError (Conflict) is returned. Unknown or already-deleted ids
// answer ErrNotFound either way.
func (v *Validator) Delete(kind entity.Kind, id int64, dryRun bool) (Report, any, error) {
	target, ok := v.targets[kind]
	if !ok {
		return Report{}, nil, fmt.Errorf("refint: no target registered for kind %q", kind)
	}
	checks := v.index.DependentsOf(kind)

	kinds := make([]entity.Kind, 0, len(checks)+1)
	kinds = append(kinds, kind)
	for _, c := range checks {
		kinds = append(kinds, c.Kind)
	}
	unlock := v.registry.Lock(kinds...)
	defer unlock()

	if !target.Exists(id) {
		return Report{}, nil, shared.ErrNotFound
	}

	var blocking []Dependent
	for _, check := range checks {
		for _, depID := range check.Scan(id) {
			blocking = append(blocking, Dependent{Kind: check.Kind, ID: depID})
		}
	}

	if len(blocking) > 0 {
		if dryRun {
			return Report{Deletable: false, Blocking: blocking}, nil, nil
		}
		return Report{}, nil, &BlockedError{Kind: kind, ID: id, Blocking: blocking}
	}
	if dryRun {
		return Report{Deletable: true}, nil, nil
	}
	deleted, err := target.SoftDelete(id)
	if err != nil {
		return Report{}, nil, err
	}
	if err := target.Save(); err != nil {
		return Report{}, nil, err
	}
	return Report{Deletable: true}, deleted, nil
}
