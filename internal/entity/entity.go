// Package entity defines the warehouse-operations data model shared by
// every store and service.
package entity

import "time"

// Kind identifies one entity collection. The string doubles as the URL
// resource segment and the backing file name.
type Kind string

const (
	KindWarehouses Kind = "warehouses"
	KindLocations  Kind = "locations"
	KindTransfers  Kind = "transfers"
	KindItems      Kind = "items"
	KindItemLines  Kind = "item_lines"
	KindItemGroups Kind = "item_groups"
	KindItemTypes  Kind = "item_types"
	KindInventories Kind = "inventories"
	KindSuppliers  Kind = "suppliers"
	KindOrders     Kind = "orders"
	KindClients    Kind = "clients"
	KindShipments  Kind = "shipments"
)

// Kinds returns every entity kind in declaration order. This order is
// canonical: multi-store lock acquisition and cascade-delete reporting
// both follow it.
func Kinds() []Kind {
	return []Kind{
		KindWarehouses,
		KindLocations,
		KindTransfers,
		KindItems,
		KindItemLines,
		KindItemGroups,
		KindItemTypes,
		KindInventories,
		KindSuppliers,
		KindOrders,
		KindClients,
		KindShipments,
	}
}

// Metadata carries the attributes common to every record: a store-assigned
// monotonic id, audit timestamps and the soft-delete flag. Records are
// never erased from storage; deletion flips IsDeleted and hides the record
// from normal reads.
type Metadata struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// Meta exposes the embedded metadata to the generic store.
func (m *Metadata) Meta() *Metadata { return m }

// LineItem is an embedded {item, amount} pair used by orders, shipments
// and transfers.
type LineItem struct {
	ItemID int64 `json:"item_id"`
	Amount int64 `json:"amount"`
}
