package masterdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/inventory"
	"github.com/cargohub/cargohub/internal/refint"
)

// ItemCreateRequest is the payload for a new item. UID is the string
// business key; when omitted one is generated.
type ItemCreateRequest struct {
	UID                  string `json:"uid"`
	Code                 string `json:"code" validate:"required"`
	Description          string `json:"description"`
	ShortDescription     string `json:"short_description"`
	UpcCode              string `json:"upc_code"`
	ModelNumber          string `json:"model_number"`
	CommodityCode        string `json:"commodity_code"`
	ItemLineID           int64  `json:"item_line" validate:"omitempty,gt=0"`
	ItemGroupID          int64  `json:"item_group" validate:"omitempty,gt=0"`
	ItemTypeID           int64  `json:"item_type" validate:"omitempty,gt=0"`
	UnitPurchaseQuantity int64  `json:"unit_purchase_quantity" validate:"gte=0"`
	UnitOrderQuantity    int64  `json:"unit_order_quantity" validate:"gte=0"`
	PackOrderQuantity    int64  `json:"pack_order_quantity" validate:"gte=0"`
	SupplierID           int64  `json:"supplier_id" validate:"omitempty,gt=0"`
	SupplierCode         string `json:"supplier_code"`
	SupplierPartNumber   string `json:"supplier_part_number"`
	WeightInKg           int64  `json:"weight_in_kg" validate:"gte=0"`
}

// ItemPatch updates an item in place. The UID is immutable.
type ItemPatch struct {
	Code                 *string `json:"code,omitempty"`
	Description          *string `json:"description,omitempty"`
	ShortDescription     *string `json:"short_description,omitempty"`
	UpcCode              *string `json:"upc_code,omitempty"`
	ModelNumber          *string `json:"model_number,omitempty"`
	CommodityCode        *string `json:"commodity_code,omitempty"`
	ItemLineID           *int64  `json:"item_line,omitempty" validate:"omitempty,gt=0"`
	ItemGroupID          *int64  `json:"item_group,omitempty" validate:"omitempty,gt=0"`
	ItemTypeID           *int64  `json:"item_type,omitempty" validate:"omitempty,gt=0"`
	UnitPurchaseQuantity *int64  `json:"unit_purchase_quantity,omitempty" validate:"omitempty,gte=0"`
	UnitOrderQuantity    *int64  `json:"unit_order_quantity,omitempty" validate:"omitempty,gte=0"`
	PackOrderQuantity    *int64  `json:"pack_order_quantity,omitempty" validate:"omitempty,gte=0"`
	SupplierID           *int64  `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	SupplierCode         *string `json:"supplier_code,omitempty"`
	SupplierPartNumber   *string `json:"supplier_part_number,omitempty"`
	WeightInKg           *int64  `json:"weight_in_kg,omitempty" validate:"omitempty,gte=0"`
}

// NewItemsResource builds the items API surface, including the nested
// listing of an item's inventory records.
func NewItemsResource(st *ItemStore, inv *inventory.Service, validator *refint.Validator) *api.CRUD[entity.Item, *entity.Item, ItemCreateRequest, ItemPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.Item, *entity.Item, ItemCreateRequest, ItemPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req ItemCreateRequest) (entity.Item, error) {
			uid := req.UID
			if uid == "" {
				uid = uuid.NewString()
			}
			return entity.Item{
				UID:                  uid,
				Code:                 req.Code,
				Description:          req.Description,
				ShortDescription:     req.ShortDescription,
				UpcCode:              req.UpcCode,
				ModelNumber:          req.ModelNumber,
				CommodityCode:        req.CommodityCode,
				ItemLineID:           req.ItemLineID,
				ItemGroupID:          req.ItemGroupID,
				ItemTypeID:           req.ItemTypeID,
				UnitPurchaseQuantity: req.UnitPurchaseQuantity,
				UnitOrderQuantity:    req.UnitOrderQuantity,
				PackOrderQuantity:    req.PackOrderQuantity,
				SupplierID:           req.SupplierID,
				SupplierCode:         req.SupplierCode,
				SupplierPartNumber:   req.SupplierPartNumber,
				WeightInKg:           req.WeightInKg,
			}, nil
		},
		Apply: func(patch ItemPatch, it *entity.Item) {
			if patch.Code != nil {
				it.Code = *patch.Code
			}
			if patch.Description != nil {
				it.Description = *patch.Description
			}
			if patch.ShortDescription != nil {
				it.ShortDescription = *patch.ShortDescription
			}
			if patch.UpcCode != nil {
				it.UpcCode = *patch.UpcCode
			}
			if patch.ModelNumber != nil {
				it.ModelNumber = *patch.ModelNumber
			}
			if patch.CommodityCode != nil {
				it.CommodityCode = *patch.CommodityCode
			}
			if patch.ItemLineID != nil {
				it.ItemLineID = *patch.ItemLineID
			}
			if patch.ItemGroupID != nil {
				it.ItemGroupID = *patch.ItemGroupID
			}
			if patch.ItemTypeID != nil {
				it.ItemTypeID = *patch.ItemTypeID
			}
			if patch.UnitPurchaseQuantity != nil {
				it.UnitPurchaseQuantity = *patch.UnitPurchaseQuantity
			}
			if patch.UnitOrderQuantity != nil {
				it.UnitOrderQuantity = *patch.UnitOrderQuantity
			}
			if patch.PackOrderQuantity != nil {
				it.PackOrderQuantity = *patch.PackOrderQuantity
			}
			if patch.SupplierID != nil {
				it.SupplierID = *patch.SupplierID
			}
			if patch.SupplierCode != nil {
				it.SupplierCode = *patch.SupplierCode
			}
			if patch.SupplierPartNumber != nil {
				it.SupplierPartNumber = *patch.SupplierPartNumber
			}
			if patch.WeightInKg != nil {
				it.WeightInKg = *patch.WeightInKg
			}
		},
		Relations: map[string]api.RelationFunc{
			"inventory": func(ctx context.Context, id int64) (any, error) {
				return inv.ByItem(id), nil
			},
		},
	})
}
