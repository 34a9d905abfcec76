package masterdata

import (
	"context"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
)

// ContactRequest mirrors the embedded warehouse contact.
type ContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// WarehouseCreateRequest is the payload for a new warehouse.
type WarehouseCreateRequest struct {
	Code     string         `json:"code" validate:"required"`
	Name     string         `json:"name" validate:"required"`
	Address  string         `json:"address"`
	Zip      string         `json:"zip"`
	City     string         `json:"city"`
	Province string         `json:"province"`
	Country  string         `json:"country"`
	Contact  ContactRequest `json:"contact"`
}

// WarehousePatch updates a warehouse in place.
type WarehousePatch struct {
	Code     *string         `json:"code,omitempty"`
	Name     *string         `json:"name,omitempty"`
	Address  *string         `json:"address,omitempty"`
	Zip      *string         `json:"zip,omitempty"`
	City     *string         `json:"city,omitempty"`
	Province *string         `json:"province,omitempty"`
	Country  *string         `json:"country,omitempty"`
	Contact  *ContactRequest `json:"contact,omitempty"`
}

// NewWarehousesResource builds the warehouses API surface, including the
// nested listing of a warehouse's locations.
func NewWarehousesResource(st *WarehouseStore, locations *LocationStore, validator *refint.Validator) *api.CRUD[entity.Warehouse, *entity.Warehouse, WarehouseCreateRequest, WarehousePatch] {
	return api.NewCRUD(api.CRUDConfig[entity.Warehouse, *entity.Warehouse, WarehouseCreateRequest, WarehousePatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req WarehouseCreateRequest) (entity.Warehouse, error) {
			return entity.Warehouse{
				Code:     req.Code,
				Name:     req.Name,
				Address:  req.Address,
				Zip:      req.Zip,
				City:     req.City,
				Province: req.Province,
				Country:  req.Country,
				Contact: entity.Contact{
					Name:  req.Contact.Name,
					Phone: req.Contact.Phone,
					Email: req.Contact.Email,
				},
			}, nil
		},
		Apply: func(patch WarehousePatch, w *entity.Warehouse) {
			if patch.Code != nil {
				w.Code = *patch.Code
			}
			if patch.Name != nil {
				w.Name = *patch.Name
			}
			if patch.Address != nil {
				w.Address = *patch.Address
			}
			if patch.Zip != nil {
				w.Zip = *patch.Zip
			}
			if patch.City != nil {
				w.City = *patch.City
			}
			if patch.Province != nil {
				w.Province = *patch.Province
			}
			if patch.Country != nil {
				w.Country = *patch.Country
			}
			if patch.Contact != nil {
				w.Contact = entity.Contact{
					Name:  patch.Contact.Name,
					Phone: patch.Contact.Phone,
					Email: patch.Contact.Email,
				}
			}
		},
		Relations: map[string]api.RelationFunc{
			"locations": func(ctx context.Context, id int64) (any, error) {
				var out []entity.Location
				for _, loc := range locations.List() {
					if loc.WarehouseID == id {
						out = append(out, loc)
					}
				}
				return out, nil
			},
		},
	})
}

// LocationCreateRequest is the payload for a new location.
type LocationCreateRequest struct {
	WarehouseID int64  `json:"warehouse_id" validate:"required,gt=0"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name"`
}

// LocationPatch updates a location in place.
type LocationPatch struct {
	WarehouseID *int64  `json:"warehouse_id,omitempty" validate:"omitempty,gt=0"`
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
}

// NewLocationsResource builds the locations API surface.
func NewLocationsResource(st *LocationStore, validator *refint.Validator) *api.CRUD[entity.Location, *entity.Location, LocationCreateRequest, LocationPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.Location, *entity.Location, LocationCreateRequest, LocationPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req LocationCreateRequest) (entity.Location, error) {
			return entity.Location{
				WarehouseID: req.WarehouseID,
				Code:        req.Code,
				Name:        req.Name,
			}, nil
		},
		Apply: func(patch LocationPatch, l *entity.Location) {
			if patch.WarehouseID != nil {
				l.WarehouseID = *patch.WarehouseID
			}
			if patch.Code != nil {
				l.Code = *patch.Code
			}
			if patch.Name != nil {
				l.Name = *patch.Name
			}
		},
	})
}
