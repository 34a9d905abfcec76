// Package refint answers "what would break if this record were removed".
// A static index maps each entity kind to the kinds that reference it by
// foreign key; the validator scans those kinds before allowing a delete.
package refint

import (
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/store"
)

// Dependent identifies one record blocking a deletion.
type Dependent struct {
	Kind entity.Kind `json:"kind"`
	ID   int64       `json:"id"`
}

// Check scans one dependent kind for non-deleted records whose foreign
// key points at the target id. Scan runs with the involved store locks
// held and must return ids in ascending order.
type Check struct {
	Kind entity.Kind
	Scan func(targetID int64) []int64
}

// Index is the static referential map. Checks are kept in declaration
// order, which fixes the order dependents are reported in.
type Index struct {
	checks map[entity.Kind][]Check
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{checks: make(map[entity.Kind][]Check)}
}

// Declare records the kinds that hold a foreign key to target.
func (x *Index) Declare(target entity.Kind, checks ...Check) {
	x.checks[target] = append(x.checks[target], checks...)
}

// DependentsOf returns the checks declared for a target kind.
func (x *Index) DependentsOf(target entity.Kind) []Check {
	return x.checks[target]
}

// ScanField builds a Check.Scan over a typed store. match reports whether
// a record references the target id.
func ScanField[T any, PT interface {
	store.Record
	*T
}](st *store.Store[T, PT], match func(rec T, targetID int64) bool) func(int64) []int64 {
	return func(targetID int64) []int64 {
		var ids []int64
		for _, rec := range st.ListLocked() {
			if match(rec, targetID) {
				ids = append(ids, PT(&rec).Meta().ID)
			}
		}
		return ids
	}
}
