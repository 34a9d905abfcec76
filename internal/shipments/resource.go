// Package shipments exposes carrier shipments and their nested order
// and line-item listings.
package shipments

import (
	"context"
	"io"
	"time"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/orders"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/store"
)

// Store is the typed collection of shipments.
type Store = store.Store[entity.Shipment, *entity.Shipment]

// NewStore builds the shipment store rooted at dir.
func NewStore(dir string) *Store {
	return store.New[entity.Shipment, *entity.Shipment](entity.KindShipments, dir)
}

// CreateRequest is the payload for a new shipment.
type CreateRequest struct {
	OrderID            int64                    `json:"order_id" validate:"omitempty,gt=0"`
	SourceID           int64                    `json:"source_id"`
	OrderDate          time.Time                `json:"order_date"`
	RequestDate        time.Time                `json:"request_date"`
	ShipmentDate       time.Time                `json:"shipment_date"`
	ShipmentType       string                   `json:"shipment_type"`
	ShipmentStatus     string                   `json:"shipment_status"`
	Notes              string                   `json:"notes"`
	CarrierCode        string                   `json:"carrier_code"`
	CarrierDescription string                   `json:"carrier_description"`
	ServiceCode        string                   `json:"service_code"`
	PaymentType        string                   `json:"payment_type"`
	TransferMode       string                   `json:"transfer_mode"`
	TotalPackageCount  int64                    `json:"total_package_count" validate:"gte=0"`
	TotalPackageWeight float64                  `json:"total_package_weight" validate:"gte=0"`
	Items              []orders.LineItemRequest `json:"items" validate:"dive"`
}

// Patch updates a shipment in place.
type Patch struct {
	OrderID            *int64                    `json:"order_id,omitempty" validate:"omitempty,gt=0"`
	SourceID           *int64                    `json:"source_id,omitempty"`
	OrderDate          *time.Time                `json:"order_date,omitempty"`
	RequestDate        *time.Time                `json:"request_date,omitempty"`
	ShipmentDate       *time.Time                `json:"shipment_date,omitempty"`
	ShipmentType       *string                   `json:"shipment_type,omitempty"`
	ShipmentStatus     *string                   `json:"shipment_status,omitempty"`
	Notes              *string                   `json:"notes,omitempty"`
	CarrierCode        *string                   `json:"carrier_code,omitempty"`
	CarrierDescription *string                   `json:"carrier_description,omitempty"`
	ServiceCode        *string                   `json:"service_code,omitempty"`
	PaymentType        *string                   `json:"payment_type,omitempty"`
	TransferMode       *string                   `json:"transfer_mode,omitempty"`
	TotalPackageCount  *int64                    `json:"total_package_count,omitempty" validate:"omitempty,gte=0"`
	TotalPackageWeight *float64                  `json:"total_package_weight,omitempty" validate:"omitempty,gte=0"`
	Items              *[]orders.LineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// Resource is the shipments API surface: CRUD plus line-item
// replacement.
type Resource struct {
	*api.CRUD[entity.Shipment, *entity.Shipment, CreateRequest, Patch]
	store *Store
}

// NewResource builds the resource. The orders store backs the nested
// listing of the orders attached to a shipment.
func NewResource(st *Store, orderStore *orders.Store, validator *refint.Validator) *Resource {
	crud := api.NewCRUD(api.CRUDConfig[entity.Shipment, *entity.Shipment, CreateRequest, Patch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req CreateRequest) (entity.Shipment, error) {
			return entity.Shipment{
				OrderID:            req.OrderID,
				SourceID:           req.SourceID,
				OrderDate:          req.OrderDate,
				RequestDate:        req.RequestDate,
				ShipmentDate:       req.ShipmentDate,
				ShipmentType:       req.ShipmentType,
				ShipmentStatus:     req.ShipmentStatus,
				Notes:              req.Notes,
				CarrierCode:        req.CarrierCode,
				CarrierDescription: req.CarrierDescription,
				ServiceCode:        req.ServiceCode,
				PaymentType:        req.PaymentType,
				TransferMode:       req.TransferMode,
				TotalPackageCount:  req.TotalPackageCount,
				TotalPackageWeight: req.TotalPackageWeight,
				Items:              orders.ToLineItems(req.Items),
			}, nil
		},
		Apply: func(patch Patch, sh *entity.Shipment) {
			if patch.OrderID != nil {
				sh.OrderID = *patch.OrderID
			}
			if patch.SourceID != nil {
				sh.SourceID = *patch.SourceID
			}
			if patch.OrderDate != nil {
				sh.OrderDate = *patch.OrderDate
			}
			if patch.RequestDate != nil {
				sh.RequestDate = *patch.RequestDate
			}
			if patch.ShipmentDate != nil {
				sh.ShipmentDate = *patch.ShipmentDate
			}
			if patch.ShipmentType != nil {
				sh.ShipmentType = *patch.ShipmentType
			}
			if patch.ShipmentStatus != nil {
				sh.ShipmentStatus = *patch.ShipmentStatus
			}
			if patch.Notes != nil {
				sh.Notes = *patch.Notes
			}
			if patch.CarrierCode != nil {
				sh.CarrierCode = *patch.CarrierCode
			}
			if patch.CarrierDescription != nil {
				sh.CarrierDescription = *patch.CarrierDescription
			}
			if patch.ServiceCode != nil {
				sh.ServiceCode = *patch.ServiceCode
			}
			if patch.PaymentType != nil {
				sh.PaymentType = *patch.PaymentType
			}
			if patch.TransferMode != nil {
				sh.TransferMode = *patch.TransferMode
			}
			if patch.TotalPackageCount != nil {
				sh.TotalPackageCount = *patch.TotalPackageCount
			}
			if patch.TotalPackageWeight != nil {
				sh.TotalPackageWeight = *patch.TotalPackageWeight
			}
			if patch.Items != nil {
				sh.Items = orders.ToLineItems(*patch.Items)
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": func(ctx context.Context, id int64) (any, error) {
				sh, err := st.Get(id)
				if err != nil {
					return nil, err
				}
				return sh.Items, nil
			},
			"orders": func(ctx context.Context, id int64) (any, error) {
				var out []entity.Order
				for _, o := range orderStore.List() {
					if o.ShipmentID == id {
						out = append(out, o)
					}
				}
				return out, nil
			},
		},
	})
	return &Resource{CRUD: crud, store: st}
}

// ReplaceItems swaps the full line-item list of a shipment.
func (r *Resource) ReplaceItems(ctx context.Context, id int64, body io.Reader) (any, error) {
	lines, err := orders.DecodeLineItems(body)
	if err != nil {
		return nil, err
	}
	r.store.Lock()
	defer r.store.Unlock()
	updated, err := r.store.UpdateLocked(id, func(sh *entity.Shipment) {
		sh.Items = lines
	})
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveLocked(); err != nil {
		return nil, err
	}
	return updated, nil
}
