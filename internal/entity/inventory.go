package entity

// Inventory tracks the stock position of one item across a set of
// locations. TotalExpected and TotalAvailable are derived counters: the
// reconciliation engine recomputes them on every mutation and they are
// never trusted from caller input.
//
//	total_expected  = total_on_hand + total_ordered
//	total_available = total_on_hand - total_allocated
type Inventory struct {
	Metadata
	ItemID         int64   `json:"item_id"`
	Description    string  `json:"description"`
	ItemReference  string  `json:"item_reference"`
	Locations      []int64 `json:"locations"`
	TotalOnHand    int64   `json:"total_on_hand"`
	TotalExpected  int64   `json:"total_expected"`
	TotalOrdered   int64   `json:"total_ordered"`
	TotalAllocated int64   `json:"total_allocated"`
	TotalAvailable int64   `json:"total_available"`
}

// OccupiesLocation reports whether the inventory record is held at the
// given location.
func (inv *Inventory) OccupiesLocation(locationID int64) bool {
	for _, id := range inv.Locations {
		if id == locationID {
			return true
		}
	}
	return false
}
