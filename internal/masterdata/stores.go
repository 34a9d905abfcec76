// Package masterdata exposes the reference entities: warehouses and
// their locations, items with their classifications, suppliers and
// clients.
package masterdata

import (
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/store"
)

type (
	WarehouseStore = store.Store[entity.Warehouse, *entity.Warehouse]
	LocationStore  = store.Store[entity.Location, *entity.Location]
	ItemStore      = store.Store[entity.Item, *entity.Item]
	ItemLineStore  = store.Store[entity.ItemLine, *entity.ItemLine]
	ItemGroupStore = store.Store[entity.ItemGroup, *entity.ItemGroup]
	ItemTypeStore  = store.Store[entity.ItemType, *entity.ItemType]
	SupplierStore  = store.Store[entity.Supplier, *entity.Supplier]
	ClientStore    = store.Store[entity.Client, *entity.Client]
)

func NewWarehouseStore(dir string) *WarehouseStore {
	return store.New[entity.Warehouse, *entity.Warehouse](entity.KindWarehouses, dir)
}

func NewLocationStore(dir string) *LocationStore {
	return store.New[entity.Location, *entity.Location](entity.KindLocations, dir)
}

func NewItemStore(dir string) *ItemStore {
	return store.New[entity.Item, *entity.Item](entity.KindItems, dir)
}

func NewItemLineStore(dir string) *ItemLineStore {
	return store.New[entity.ItemLine, *entity.ItemLine](entity.KindItemLines, dir)
}

func NewItemGroupStore(dir string) *ItemGroupStore {
	return store.New[entity.ItemGroup, *entity.ItemGroup](entity.KindItemGroups, dir)
}

func NewItemTypeStore(dir string) *ItemTypeStore {
	return store.New[entity.ItemType, *entity.ItemType](entity.KindItemTypes, dir)
}

func NewSupplierStore(dir string) *SupplierStore {
	return store.New[entity.Supplier, *entity.Supplier](entity.KindSuppliers, dir)
}

func NewClientStore(dir string) *ClientStore {
	return store.New[entity.Client, *entity.Client](entity.KindClients, dir)
}
