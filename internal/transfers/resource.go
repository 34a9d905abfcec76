package transfers

import (
	"context"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/refint"
)

// LineItemRequest is one {item, amount} pair of a transfer payload.
type LineItemRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CreateRequest is the payload for scheduling a transfer. The status is
// not accepted: new transfers always start Pending.
type CreateRequest struct {
	Reference    string            `json:"reference"`
	TransferFrom int64             `json:"transfer_from" validate:"required,gt=0"`
	TransferTo   int64             `json:"transfer_to" validate:"required,gt=0"`
	Items        []LineItemRequest `json:"items" validate:"dive"`
}

// Patch updates a transfer in place. The status is excluded; the only
// way forward is commit.
type Patch struct {
	Reference    *string            `json:"reference,omitempty"`
	TransferFrom *int64             `json:"transfer_from,omitempty" validate:"omitempty,gt=0"`
	TransferTo   *int64             `json:"transfer_to,omitempty" validate:"omitempty,gt=0"`
	Items        *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// Resource is the transfers API surface: CRUD plus the commit workflow.
type Resource struct {
	*api.CRUD[entity.Transfer, *entity.Transfer, CreateRequest, Patch]
	service *Service
}

// NewResource builds the resource on top of the workflow service.
func NewResource(st *Store, validator *refint.Validator, service *Service) *Resource {
	crud := api.NewCRUD(api.CRUDConfig[entity.Transfer, *entity.Transfer, CreateRequest, Patch]{
		Store:     st,
		Validator: validator,
		Build: func(ctx context.Context, req CreateRequest) (entity.Transfer, error) {
			return entity.Transfer{
				Reference:      req.Reference,
				TransferFrom:   req.TransferFrom,
				TransferTo:     req.TransferTo,
				TransferStatus: entity.TransferStatusPending,
				Items:          toLineItems(req.Items),
			}, nil
		},
		Apply: func(patch Patch, tr *entity.Transfer) {
			if patch.Reference != nil {
				tr.Reference = *patch.Reference
			}
			if patch.TransferFrom != nil {
				tr.TransferFrom = *patch.TransferFrom
			}
			if patch.TransferTo != nil {
				tr.TransferTo = *patch.TransferTo
			}
			if patch.Items != nil {
				tr.Items = toLineItems(*patch.Items)
			}
		},
		AfterCreate: func(ctx context.Context, tr entity.Transfer) {
			service.NotifyScheduled(ctx, tr.ID)
		},
	})
	return &Resource{CRUD: crud, service: service}
}

// Commit processes the transfer.
func (r *Resource) Commit(ctx context.Context, id int64) (any, error) {
	tr, err := r.service.Commit(ctx, id)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func toLineItems(lines []LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.LineItem{ItemID: l.ItemID, Amount: l.Amount})
	}
	return out
}
