package masterdata

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/inventory"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/store"
)

func newItemsFixture(t *testing.T) (*ItemStore, *inventory.Service, *refint.Validator) {
	t.Helper()
	dir := t.TempDir()
	items := NewItemStore(dir)
	inventories := inventory.NewStore(dir)

	registry := store.NewRegistry()
	require.NoError(t, registry.Add(items))
	require.NoError(t, registry.Add(inventories))

	index := refint.NewIndex()
	validator := refint.NewValidator(registry, index)
	validator.Register(refint.TargetFor(items))
	validator.Register(refint.TargetFor(inventories))
	return items, inventory.NewService(inventories), validator
}

func TestItemUIDGeneratedWhenAbsent(t *testing.T) {
	items, inv, validator := newItemsFixture(t)
	res := NewItemsResource(items, inv, validator)

	created, err := res.Create(context.Background(), strings.NewReader(`{"code":"ITM-1"}`))
	require.NoError(t, err)
	it, ok := created.(entity.Item)
	require.True(t, ok)
	require.NotEmpty(t, it.UID)

	explicit, err := res.Create(context.Background(), strings.NewReader(`{"code":"ITM-2","uid":"P000002"}`))
	require.NoError(t, err)
	it2, ok := explicit.(entity.Item)
	require.True(t, ok)
	require.Equal(t, "P000002", it2.UID)
}

func TestItemInventoryRelation(t *testing.T) {
	items, inv, validator := newItemsFixture(t)
	res := NewItemsResource(items, inv, validator)

	it := items.Create(entity.Item{Code: "ITM-1", UID: "P000001"})
	want := inv.Store().Create(entity.Inventory{ItemID: it.ID, TotalOnHand: 10, TotalExpected: 10, TotalAvailable: 10})
	inv.Store().Create(entity.Inventory{ItemID: it.ID + 1})

	got, err := res.Relation(context.Background(), it.ID, "inventory")
	require.NoError(t, err)
	listed, ok := got.([]entity.Inventory)
	require.True(t, ok)
	require.Len(t, listed, 1)
	require.Equal(t, want.ID, listed[0].ID)
}
