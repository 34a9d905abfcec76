// Package orders exposes outbound orders, including the bulk line-item
// replacement used by order pickers.
package orders

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/platform/httpx"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
	"github.com/cargohub/cargohub/internal/validate"
)

// Store is the typed collection of orders.
type Store = store.Store[entity.Order, *entity.Order]

// NewStore builds the order store rooted at dir.
func NewStore(dir string) *Store {
	return store.New[entity.Order, *entity.Order](entity.KindOrders, dir)
}

// LineItemRequest is one {item, amount} pair of an order payload.
type LineItemRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CreateRequest is the payload for a new order.
type CreateRequest struct {
	SourceID       int64             `json:"source_id"`
	OrderDate      time.Time         `json:"order_date"`
	RequestDate    time.Time         `json:"request_date"`
	Reference      string            `json:"reference" validate:"required"`
	ReferenceExtra string            `json:"reference_extra"`
	OrderStatus    string            `json:"order_status"`
	Notes          string            `json:"notes"`
	ShippingNotes  string            `json:"shipping_notes"`
	PickingNotes   string            `json:"picking_notes"`
	WarehouseID    int64             `json:"warehouse_id" validate:"omitempty,gt=0"`
	ShipTo         int64             `json:"ship_to" validate:"omitempty,gt=0"`
	BillTo         int64             `json:"bill_to" validate:"omitempty,gt=0"`
	ShipmentID     int64             `json:"shipment_id" validate:"omitempty,gt=0"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	TotalDiscount  decimal.Decimal   `json:"total_discount"`
	TotalTax       decimal.Decimal   `json:"total_tax"`
	TotalSurcharge decimal.Decimal   `json:"total_surcharge"`
	Items          []LineItemRequest `json:"items" validate:"dive"`
}

// Patch updates an order in place.
type Patch struct {
	SourceID       *int64             `json:"source_id,omitempty"`
	OrderDate      *time.Time         `json:"order_date,omitempty"`
	RequestDate    *time.Time         `json:"request_date,omitempty"`
	Reference      *string            `json:"reference,omitempty"`
	ReferenceExtra *string            `json:"reference_extra,omitempty"`
	OrderStatus    *string            `json:"order_status,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	ShippingNotes  *string            `json:"shipping_notes,omitempty"`
	PickingNotes   *string            `json:"picking_notes,omitempty"`
	WarehouseID    *int64             `json:"warehouse_id,omitempty" validate:"omitempty,gt=0"`
	ShipTo         *int64             `json:"ship_to,omitempty" validate:"omitempty,gt=0"`
	BillTo         *int64             `json:"bill_to,omitempty" validate:"omitempty,gt=0"`
	ShipmentID     *int64             `json:"shipment_id,omitempty" validate:"omitempty,gt=0"`
	TotalAmount    *decimal.Decimal   `json:"total_amount,omitempty"`
	TotalDiscount  *decimal.Decimal   `json:"total_discount,omitempty"`
	TotalTax       *decimal.Decimal   `json:"total_tax,omitempty"`
	TotalSurcharge *decimal.Decimal   `json:"total_surcharge,omitempty"`
	Items          *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// Resource is the orders API surface: CRUD plus line-item replacement.
type Resource struct {
	*api.CRUD[entity.Order, *entity.Order, CreateRequest, Patch]
	store *Store
}

// NewResource builds the resource.
func NewResource(st *Store, validator *refint.Validator) *Resource {
	crud := api.NewCRUD(api.CRUDConfig[entity.Order, *entity.Order, CreateRequest, Patch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req CreateRequest) (entity.Order, error) {
			return entity.Order{
				SourceID:       req.SourceID,
				OrderDate:      req.OrderDate,
				RequestDate:    req.RequestDate,
				Reference:      req.Reference,
				ReferenceExtra: req.ReferenceExtra,
				OrderStatus:    req.OrderStatus,
				Notes:          req.Notes,
				ShippingNotes:  req.ShippingNotes,
				PickingNotes:   req.PickingNotes,
				WarehouseID:    req.WarehouseID,
				ShipTo:         req.ShipTo,
				BillTo:         req.BillTo,
				ShipmentID:     req.ShipmentID,
				TotalAmount:    req.TotalAmount,
				TotalDiscount:  req.TotalDiscount,
				TotalTax:       req.TotalTax,
				TotalSurcharge: req.TotalSurcharge,
				Items:          ToLineItems(req.Items),
			}, nil
		},
		Apply: func(patch Patch, o *entity.Order) {
			if patch.SourceID != nil {
				o.SourceID = *patch.SourceID
			}
			if patch.OrderDate != nil {
				o.OrderDate = *patch.OrderDate
			}
			if patch.RequestDate != nil {
				o.RequestDate = *patch.RequestDate
			}
			if patch.Reference != nil {
				o.Reference = *patch.Reference
			}
			if patch.ReferenceExtra != nil {
				o.ReferenceExtra = *patch.ReferenceExtra
			}
			if patch.OrderStatus != nil {
				o.OrderStatus = *patch.OrderStatus
			}
			if patch.Notes != nil {
				o.Notes = *patch.Notes
			}
			if patch.ShippingNotes != nil {
				o.ShippingNotes = *patch.ShippingNotes
			}
			if patch.PickingNotes != nil {
				o.PickingNotes = *patch.PickingNotes
			}
			if patch.WarehouseID != nil {
				o.WarehouseID = *patch.WarehouseID
			}
			if patch.ShipTo != nil {
				o.ShipTo = *patch.ShipTo
			}
			if patch.BillTo != nil {
				o.BillTo = *patch.BillTo
			}
			if patch.ShipmentID != nil {
				o.ShipmentID = *patch.ShipmentID
			}
			if patch.TotalAmount != nil {
				o.TotalAmount = *patch.TotalAmount
			}
			if patch.TotalDiscount != nil {
				o.TotalDiscount = *patch.TotalDiscount
			}
			if patch.TotalTax != nil {
				o.TotalTax = *patch.TotalTax
			}
			if patch.TotalSurcharge != nil {
				o.TotalSurcharge = *patch.TotalSurcharge
			}
			if patch.Items != nil {
				o.Items = ToLineItems(*patch.Items)
			}
		},
		Relations: map[string]api.RelationFunc{
			"items": func(ctx context.Context, id int64) (any, error) {
				o, err := st.Get(id)
				if err != nil {
					return nil, err
				}
				return o.Items, nil
			},
		},
	})
	return &Resource{CRUD: crud, store: st}
}

// ReplaceItems swaps the full line-item list of an order. The body is a
// JSON array of {item_id, amount} pairs.
func (r *Resource) ReplaceItems(ctx context.Context, id int64, body io.Reader) (any, error) {
	lines, err := DecodeLineItems(body)
	if err != nil {
		return nil, err
	}
	r.store.Lock()
	defer r.store.Unlock()
	updated, err := r.store.UpdateLocked(id, func(o *entity.Order) {
		o.Items = lines
	})
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveLocked(); err != nil {
		return nil, err
	}
	return updated, nil
}

// DecodeLineItems parses and validates a line-item array body.
func DecodeLineItems(body io.Reader) ([]entity.LineItem, error) {
	var reqs []LineItemRequest
	if err := httpx.DecodeJSON(body, &reqs); err != nil {
		return nil, shared.NewValidationError(map[string]string{"body": "malformed payload: " + err.Error()})
	}
	for _, req := range reqs {
		if err := validate.Struct(req); err != nil {
			return nil, err
		}
	}
	return ToLineItems(reqs), nil
}

// ToLineItems converts request pairs into entity line items.
func ToLineItems(lines []LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.LineItem{ItemID: l.ItemID, Amount: l.Amount})
	}
	return out
}
