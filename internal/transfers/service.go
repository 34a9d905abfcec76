// Package transfers implements the batch-transfer workflow: transfers
// are scheduled Pending and commit moves stock between locations in one
// atomic step.
package transfers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/inventory"
	"github.com/cargohub/cargohub/internal/notify"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
)

// Store is the typed collection of transfers.
type Store = store.Store[entity.Transfer, *entity.Transfer]

// NewStore builds the transfer store rooted at dir.
func NewStore(dir string) *Store {
	return store.New[entity.Transfer, *entity.Transfer](entity.KindTransfers, dir)
}

// Service coordinates transfer commits across the transfer and
// inventory stores.
type Service struct {
	registry  *store.Registry
	transfers *Store
	inventory *inventory.Service
	publisher notify.Publisher
	logger    *slog.Logger
}

// NewService wires the workflow to its stores.
func NewService(registry *store.Registry, transfers *Store, inv *inventory.Service, publisher notify.Publisher, logger *slog.Logger) *Service {
	return &Service{
		registry:  registry,
		transfers: transfers,
		inventory: inv,
		publisher: publisher,
		logger:    logger,
	}
}

// move is one computed stock adjustment of a commit.
type move struct {
	inventoryID int64
	delta       int64
}

// Commit processes a Pending transfer: for every line the item's stock
// leaves the source location and arrives at the destination, then the
// transfer flips to Processed. The whole commit happens under the
// transfer and inventory locks, so a failed precondition leaves nothing
// half-moved. Committing a Processed transfer is a conflict.
func (s *Service) Commit(ctx context.Context, id int64) (entity.Transfer, error) {
	unlock := s.registry.Lock(entity.KindTransfers, entity.KindInventories)
	defer unlock()

	tr, err := s.transfers.GetLocked(id)
	if err != nil {
		return entity.Transfer{}, err
	}
	if tr.TransferStatus != entity.TransferStatusPending {
		return entity.Transfer{}, fmt.Errorf("transfer %d is %s: %w", id, tr.TransferStatus, shared.ErrConflict)
	}

	// Resolve every line to its stock adjustments first; applying them
	// afterwards cannot fail, which keeps the commit all-or-nothing.
	var moves []move
	for _, line := range tr.Items {
		for _, inv := range s.inventory.ByItemLocked(line.ItemID) {
			if inv.OccupiesLocation(tr.TransferFrom) {
				moves = append(moves, move{inventoryID: inv.ID, delta: -line.Amount})
			} else if inv.OccupiesLocation(tr.TransferTo) {
				moves = append(moves, move{inventoryID: inv.ID, delta: line.Amount})
			}
		}
	}
	for _, m := range moves {
		if _, err := s.inventory.ApplyDeltaLocked(m.inventoryID, m.delta); err != nil {
			return entity.Transfer{}, err
		}
	}

	updated, err := s.transfers.UpdateLocked(id, func(tr *entity.Transfer) {
		tr.TransferStatus = entity.TransferStatusProcessed
	})
	if err != nil {
		return entity.Transfer{}, err
	}
	if err := s.transfers.SaveLocked(); err != nil {
		return entity.Transfer{}, err
	}
	if err := s.inventory.Store().SaveLocked(); err != nil {
		return entity.Transfer{}, err
	}

	s.publish(ctx, fmt.Sprintf("Processed batch transfer with id:%d", id))
	return updated, nil
}

// NotifyScheduled announces a freshly created transfer.
func (s *Service) NotifyScheduled(ctx context.Context, id int64) {
	s.publish(ctx, fmt.Sprintf("Scheduled batch transfer %d", id))
}

// publish is fire-and-forget; a dead queue must not fail the workflow.
func (s *Service) publish(ctx context.Context, message string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, message); err != nil {
		s.logger.Warn("notification publish failed", "error", err)
	}
}
