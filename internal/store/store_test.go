package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/shared"
)

func newTestStore(t *testing.T) *Store[entity.Warehouse, *entity.Warehouse] {
	t.Helper()
	return New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, t.TempDir())
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	st := newTestStore(t)

	first := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})
	second := st.Create(entity.Warehouse{Code: "WH-B", Name: "South"})

	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)
	require.False(t, first.CreatedAt.IsZero())
	require.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestGetUnknownID(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(42)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	st := newTestStore(t)
	created := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})

	updated, err := st.Update(created.ID, func(w *entity.Warehouse) {
		w.Name = "North Annex"
		// A careless mutation of the metadata must not survive.
		w.ID = 99
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "North Annex", updated.Name)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestSoftDeleteHidesRecord(t *testing.T) {
	st := newTestStore(t)
	created := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})

	deleted, err := st.SoftDelete(created.ID)
	require.NoError(t, err)
	require.True(t, deleted.IsDeleted)

	_, err = st.Get(created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = st.Update(created.ID, func(w *entity.Warehouse) { w.Name = "x" })
	require.ErrorIs(t, err, shared.ErrNotFound)

	require.Empty(t, st.List())
}

func TestSoftDeleteTwice(t *testing.T) {
	st := newTestStore(t)
	created := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})

	_, err := st.SoftDelete(created.ID)
	require.NoError(t, err)

	_, err = st.SoftDelete(created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIDsNeverReused(t *testing.T) {
	dir := t.TempDir()
	st := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)

	first := st.Create(entity.Warehouse{Code: "WH-A"})
	_, err := st.SoftDelete(first.ID)
	require.NoError(t, err)
	require.NoError(t, st.Save())

	reloaded := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)
	require.NoError(t, reloaded.Load())

	second := reloaded.Create(entity.Warehouse{Code: "WH-B"})
	require.Equal(t, first.ID+1, second.ID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)

	kept := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})
	gone := st.Create(entity.Warehouse{Code: "WH-B", Name: "South"})
	_, err := st.SoftDelete(gone.ID)
	require.NoError(t, err)
	require.NoError(t, st.Save())

	reloaded := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)
	require.NoError(t, reloaded.Load())

	listed := reloaded.List()
	require.Len(t, listed, 1)
	require.Equal(t, kept.ID, listed[0].ID)
	require.Equal(t, "WH-A", listed[0].Code)

	// Soft-deleted records survive persistence, they just stay hidden.
	reloaded.RLock()
	all := reloaded.ListAllLocked()
	reloaded.RUnlock()
	require.Len(t, all, 2)
}

func TestLoadAbsentFile(t *testing.T) {
	st := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, st.Load())
	require.Empty(t, st.List())
}

func TestListReturnsCopies(t *testing.T) {
	st := newTestStore(t)
	created := st.Create(entity.Warehouse{Code: "WH-A", Name: "North"})

	listed := st.List()
	listed[0].Name = "mutated"

	got, err := st.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "North", got.Name)
}

func TestRegistryLockOrdering(t *testing.T) {
	dir := t.TempDir()
	warehouses := New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)
	inventories := New[entity.Inventory, *entity.Inventory](entity.KindInventories, dir)

	registry := NewRegistry()
	require.NoError(t, registry.Add(warehouses))
	require.NoError(t, registry.Add(inventories))
	require.Error(t, registry.Add(warehouses), "duplicate kind must be rejected")

	// Request order must not matter; release and relock to prove both
	// orders resolve to the same acquisition sequence.
	unlock := registry.Lock(entity.KindInventories, entity.KindWarehouses)
	unlock()
	unlock = registry.Lock(entity.KindWarehouses, entity.KindInventories)
	unlock()

	require.NoError(t, registry.LoadAll())
}
