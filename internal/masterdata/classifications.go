package masterdata

import (
	"context"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
)

// ClassificationCreateRequest covers item lines, groups and types, which
// share one shape. Names carry letters and spaces only.
type ClassificationCreateRequest struct {
	Name        string `json:"name" validate:"required,alphaspace"`
	Description string `json:"description"`
}

// ClassificationPatch updates a classification in place.
type ClassificationPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,alphaspace"`
	Description *string `json:"description,omitempty"`
}

// itemsBy lists the items matched by key, used for the nested listings
// of every classification and of suppliers.
func itemsBy(items *ItemStore, key func(entity.Item) int64) api.RelationFunc {
	return func(ctx context.Context, id int64) (any, error) {
		var out []entity.Item
		for _, it := range items.List() {
			if key(it) == id {
				out = append(out, it)
			}
		}
		return out, nil
	}
}

// NewItemLinesResource builds the item_lines API surface.
func NewItemLinesResource(st *ItemLineStore, items *ItemStore, validator *refint.Validator) *api.CRUD[entity.ItemLine, *entity.ItemLine, ClassificationCreateRequest, ClassificationPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.ItemLine, *entity.ItemLine, ClassificationCreateRequest, ClassificationPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req ClassificationCreateRequest) (entity.ItemLine, error) {
			return entity.ItemLine{Name: req.Name, Description: req.Description}, nil
		},
		Apply: func(patch ClassificationPatch, c *entity.ItemLine) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Description != nil {
				c.Description = *patch.Description
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": itemsBy(items, func(it entity.Item) int64 { return it.ItemLineID }),
		},
	})
}

// NewItemGroupsResource builds the item_groups API surface.
func NewItemGroupsResource(st *ItemGroupStore, items *ItemStore, validator *refint.Validator) *api.CRUD[entity.ItemGroup, *entity.ItemGroup, ClassificationCreateRequest, ClassificationPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.ItemGroup, *entity.ItemGroup, ClassificationCreateRequest, ClassificationPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req ClassificationCreateRequest) (entity.ItemGroup, error) {
			return entity.ItemGroup{Name: req.Name, Description: req.Description}, nil
		},
		Apply: func(patch ClassificationPatch, c *entity.ItemGroup) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Description != nil {
				c.Description = *patch.Description
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": itemsBy(items, func(it entity.Item) int64 { return it.ItemGroupID }),
		},
	})
}

// NewItemTypesResource builds the item_types API surface.
func NewItemTypesResource(st *ItemTypeStore, items *ItemStore, validator *refint.Validator) *api.CRUD[entity.ItemType, *entity.ItemType, ClassificationCreateRequest, ClassificationPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.ItemType, *entity.ItemType, ClassificationCreateRequest, ClassificationPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req ClassificationCreateRequest) (entity.ItemType, error) {
			return entity.ItemType{Name: req.Name, Description: req.Description}, nil
		},
		Apply: func(patch ClassificationPatch, c *entity.ItemType) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Description != nil {
				c.Description = *patch.Description
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": itemsBy(items, func(it entity.Item) int64 { return it.ItemTypeID }),
		},
	})
}
