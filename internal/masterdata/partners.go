package masterdata

import (
	"context"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/store"
)

// SupplierCreateRequest is the payload for a new supplier.
type SupplierCreateRequest struct {
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	AddressExtra string `json:"address_extra"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	Province     string `json:"province"`
	Country      string `json:"country"`
	ContactName  string `json:"contact_name"`
	Phonenumber  string `json:"phonenumber"`
	Reference    string `json:"reference"`
}

// SupplierPatch updates a supplier in place.
type SupplierPatch struct {
	Code         *string `json:"code,omitempty"`
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	AddressExtra *string `json:"address_extra,omitempty"`
	City         *string `json:"city,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	Province     *string `json:"province,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	Phonenumber  *string `json:"phonenumber,omitempty"`
	Reference    *string `json:"reference,omitempty"`
}

// NewSuppliersResource builds the suppliers API surface, including the
// nested listing of a supplier's items.
func NewSuppliersResource(st *SupplierStore, items *ItemStore, validator *refint.Validator) *api.CRUD[entity.Supplier, *entity.Supplier, SupplierCreateRequest, SupplierPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.Supplier, *entity.Supplier, SupplierCreateRequest, SupplierPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req SupplierCreateRequest) (entity.Supplier, error) {
			return entity.Supplier{
				Code:         req.Code,
				Name:         req.Name,
				Address:      req.Address,
				AddressExtra: req.AddressExtra,
				City:         req.City,
				ZipCode:      req.ZipCode,
				Province:     req.Province,
				Country:      req.Country,
				ContactName:  req.ContactName,
				Phonenumber:  req.Phonenumber,
				Reference:    req.Reference,
			}, nil
		},
		Apply: func(patch SupplierPatch, s *entity.Supplier) {
			if patch.Code != nil {
				s.Code = *patch.Code
			}
			if patch.Name != nil {
				s.Name = *patch.Name
			}
			if patch.Address != nil {
				s.Address = *patch.Address
			}
			if patch.AddressExtra != nil {
				s.AddressExtra = *patch.AddressExtra
			}
			if patch.City != nil {
				s.City = *patch.City
			}
			if patch.ZipCode != nil {
				s.ZipCode = *patch.ZipCode
			}
			if patch.Province != nil {
				s.Province = *patch.Province
			}
			if patch.Country != nil {
				s.Country = *patch.Country
			}
			if patch.ContactName != nil {
				s.ContactName = *patch.ContactName
			}
			if patch.Phonenumber != nil {
				s.Phonenumber = *patch.Phonenumber
			}
			if patch.Reference != nil {
				s.Reference = *patch.Reference
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": itemsBy(items, func(it entity.Item) int64 { return it.SupplierID }),
		},
	})
}

// ClientCreateRequest is the payload for a new client.
type ClientCreateRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	Province     string `json:"province"`
	Country      string `json:"country"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// ClientPatch updates a client in place.
type ClientPatch struct {
	Name         *string `json:"name,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	Province     *string `json:"province,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// NewClientsResource builds the clients API surface. The nested orders
// listing matches a client as either ship-to or bill-to party.
func NewClientsResource(st *ClientStore, orders *store.Store[entity.Order, *entity.Order], validator *refint.Validator) *api.CRUD[entity.Client, *entity.Client, ClientCreateRequest, ClientPatch] {
	return api.NewCRUD(api.CRUDConfig[entity.Client, *entity.Client, ClientCreateRequest, ClientPatch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req ClientCreateRequest) (entity.Client, error) {
			return entity.Client{
				Name:         req.Name,
				Address:      req.Address,
				City:         req.City,
				ZipCode:      req.ZipCode,
				Province:     req.Province,
				Country:      req.Country,
				ContactName:  req.ContactName,
				ContactPhone: req.ContactPhone,
				ContactEmail: req.ContactEmail,
			}, nil
		},
		Apply: func(patch ClientPatch, c *entity.Client) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Address != nil {
				c.Address = *patch.Address
			}
			if patch.City != nil {
				c.City = *patch.City
			}
			if patch.ZipCode != nil {
				c.ZipCode = *patch.ZipCode
			}
			if patch.Province != nil {
				c.Province = *patch.Province
			}
			if patch.Country != nil {
				c.Country = *patch.Country
			}
			if patch.ContactName != nil {
				c.ContactName = *patch.ContactName
			}
			if patch.ContactPhone != nil {
				c.ContactPhone = *patch.ContactPhone
			}
			if patch.ContactEmail != nil {
				c.ContactEmail = *patch.ContactEmail
			}
		},
		Relations: map[string]api.RelationFunc{
			"orders": func(ctx context.Context, id int64) (any, error) {
				var out []entity.Order
				for _, o := range orders.List() {
					if o.ShipTo == id || o.BillTo == id {
						out = append(out, o)
					}
				}
				return out, nil
			},
		},
	})
}
