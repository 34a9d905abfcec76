// Package inventory owns the stock ledger and its reconciliation rules.
// Every write to an inventory record, whether from the API or from a
// transfer commit, goes through this package so the derived counters can
// never drift from the base ones.
package inventory

import (
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/store"
)

// Store is the typed collection backing the ledger.
type Store = store.Store[entity.Inventory, *entity.Inventory]

// NewStore builds the inventory store rooted at dir.
func NewStore(dir string) *Store {
	return store.New[entity.Inventory, *entity.Inventory](entity.KindInventories, dir)
}

// Reconcile recomputes the derived counters from the base ones.
func Reconcile(inv *entity.Inventory) {
	inv.TotalExpected = inv.TotalOnHand + inv.TotalOrdered
	inv.TotalAvailable = inv.TotalOnHand - inv.TotalAllocated
}

// Service mediates all mutations of inventory records.
type Service struct {
	store *Store
}

// NewService wires the service to its store.
func NewService(st *Store) *Service {
	return &Service{store: st}
}

// Store exposes the underlying collection for registry wiring and for
// workflows that coordinate their own locking.
func (s *Service) Store() *Store { return s.store }

// ApplyDelta shifts the on-hand counter of one record by delta and
// reconciles. The change is in-memory; the caller decides when to
// persist.
func (s *Service) ApplyDelta(id int64, delta int64) (entity.Inventory, error) {
	s.store.Lock()
	defer s.store.Unlock()
	return s.ApplyDeltaLocked(id, delta)
}

// ApplyDeltaLocked is ApplyDelta for callers already holding the store
// lock, typically through Registry.Lock during a transfer commit.
func (s *Service) ApplyDeltaLocked(id int64, delta int64) (entity.Inventory, error) {
	return s.store.UpdateLocked(id, func(inv *entity.Inventory) {
		inv.TotalOnHand += delta
		Reconcile(inv)
	})
}

// ByItem lists the inventory records referencing one item.
func (s *Service) ByItem(itemID int64) []entity.Inventory {
	s.store.RLock()
	defer s.store.RUnlock()
	return s.ByItemLocked(itemID)
}

// ByItemLocked is ByItem for callers already holding the store lock.
func (s *Service) ByItemLocked(itemID int64) []entity.Inventory {
	var out []entity.Inventory
	for _, inv := range s.store.ListLocked() {
		if inv.ItemID == itemID {
			out = append(out, inv)
		}
	}
	return out
}
