package inventory

import (
	"context"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
)

// CreateRequest is the payload for a new inventory record. The derived
// counters total_expected and total_available are accepted so stored
// records round-trip, but their values are discarded and recomputed.
type CreateRequest struct {
	ItemID         int64   `json:"item_id" validate:"required,gt=0"`
	Description    string  `json:"description"`
	ItemReference  string  `json:"item_reference"`
	Locations      []int64 `json:"locations"`
	TotalOnHand    int64   `json:"total_on_hand" validate:"gte=0"`
	TotalExpected  int64   `json:"total_expected"`
	TotalOrdered   int64   `json:"total_ordered" validate:"gte=0"`
	TotalAllocated int64   `json:"total_allocated" validate:"gte=0"`
	TotalAvailable int64   `json:"total_available"`
}

// Patch updates an inventory record. Derived counters are likewise
// ignored and recomputed.
type Patch struct {
	ItemID         *int64   `json:"item_id,omitempty" validate:"omitempty,gt=0"`
	Description    *string  `json:"description,omitempty"`
	ItemReference  *string  `json:"item_reference,omitempty"`
	Locations      *[]int64 `json:"locations,omitempty"`
	TotalOnHand    *int64   `json:"total_on_hand,omitempty" validate:"omitempty,gte=0"`
	TotalExpected  *int64   `json:"total_expected,omitempty"`
	TotalOrdered   *int64   `json:"total_ordered,omitempty" validate:"omitempty,gte=0"`
	TotalAllocated *int64   `json:"total_allocated,omitempty" validate:"omitempty,gte=0"`
	TotalAvailable *int64   `json:"total_available,omitempty"`
}

// NewResource builds the inventories API surface. Every stored record
// passes through Reconcile, so the invariants hold no matter what the
// caller sent.
func NewResource(st *Store, validator *refint.Validator) *api.CRUD[entity.Inventory, *entity.Inventory, CreateRequest, Patch] {
	return api.NewCRUD(api.CRUDConfig[entity.Inventory, *entity.Inventory, CreateRequest, Patch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req CreateRequest) (entity.Inventory, error) {
			return entity.Inventory{
				ItemID:         req.ItemID,
				Description:    req.Description,
				ItemReference:  req.ItemReference,
				Locations:      req.Locations,
				TotalOnHand:    req.TotalOnHand,
				TotalOrdered:   req.TotalOrdered,
				TotalAllocated: req.TotalAllocated,
			}, nil
		},
		Apply: func(patch Patch, inv *entity.Inventory) {
			if patch.ItemID != nil {
				inv.ItemID = *patch.ItemID
			}
			if patch.Description != nil {
				inv.Description = *patch.Description
			}
			if patch.ItemReference != nil {
				inv.ItemReference = *patch.ItemReference
			}
			if patch.Locations != nil {
				inv.Locations = *patch.Locations
			}
			if patch.TotalOnHand != nil {
				inv.TotalOnHand = *patch.TotalOnHand
			}
			if patch.TotalOrdered != nil {
				inv.TotalOrdered = *patch.TotalOrdered
			}
			if patch.TotalAllocated != nil {
				inv.TotalAllocated = *patch.TotalAllocated
			}
		},
		Normalize: func(inv *entity.Inventory) {
			Reconcile(inv)
		},
	})
}
