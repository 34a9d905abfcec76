package transfers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/inventory"
	"github.com/cargohub/cargohub/internal/notify"
	"github.com/cargohub/cargohub/internal/shared"
	"github.com/cargohub/cargohub/internal/store"
)

type commitFixture struct {
	transfers *Store
	inventory *inventory.Service
	publisher *notify.MemoryPublisher
	service   *Service
}

func newCommitFixture(t *testing.T) *commitFixture {
	t.Helper()
	dir := t.TempDir()
	transferStore := NewStore(dir)
	inventoryStore := inventory.NewStore(dir)

	registry := store.NewRegistry()
	require.NoError(t, registry.Add(transferStore))
	require.NoError(t, registry.Add(inventoryStore))

	invService := inventory.NewService(inventoryStore)
	publisher := &notify.MemoryPublisher{}
	service := NewService(registry, transferStore, invService, publisher, slog.Default())

	return &commitFixture{
		transfers: transferStore,
		inventory: invService,
		publisher: publisher,
		service:   service,
	}
}

func TestCommitMovesStock(t *testing.T) {
	f := newCommitFixture(t)
	source := f.inventory.Store().Create(entity.Inventory{
		ItemID: 1, Locations: []int64{10}, TotalOnHand: 100, TotalOrdered: 40, TotalAllocated: 25,
		TotalExpected: 140, TotalAvailable: 75,
	})
	dest := f.inventory.Store().Create(entity.Inventory{
		ItemID: 1, Locations: []int64{20}, TotalOnHand: 5,
		TotalExpected: 5, TotalAvailable: 5,
	})
	tr := f.transfers.Create(entity.Transfer{
		Reference:      "TR00001",
		TransferFrom:   10,
		TransferTo:     20,
		TransferStatus: entity.TransferStatusPending,
		Items:          []entity.LineItem{{ItemID: 1, Amount: 15}},
	})

	committed, err := f.service.Commit(context.Background(), tr.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TransferStatusProcessed, committed.TransferStatus)

	from, err := f.inventory.Store().Get(source.ID)
	require.NoError(t, err)
	require.Equal(t, int64(85), from.TotalOnHand)
	require.Equal(t, int64(125), from.TotalExpected)
	require.Equal(t, int64(60), from.TotalAvailable)

	to, err := f.inventory.Store().Get(dest.ID)
	require.NoError(t, err)
	require.Equal(t, int64(20), to.TotalOnHand)
	require.Equal(t, int64(20), to.TotalExpected)
	require.Equal(t, int64(20), to.TotalAvailable)

	require.Equal(t, []string{"Processed batch transfer with id:1"}, f.publisher.Messages())
}

func TestCommitProcessedTransferConflicts(t *testing.T) {
	f := newCommitFixture(t)
	tr := f.transfers.Create(entity.Transfer{
		TransferFrom:   10,
		TransferTo:     20,
		TransferStatus: entity.TransferStatusProcessed,
	})

	_, err := f.service.Commit(context.Background(), tr.ID)
	require.ErrorIs(t, err, shared.ErrConflict)
	require.Empty(t, f.publisher.Messages())
}

func TestCommitUnknownTransfer(t *testing.T) {
	f := newCommitFixture(t)

	_, err := f.service.Commit(context.Background(), 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCommitOneSidedInventory(t *testing.T) {
	f := newCommitFixture(t)
	// Inventory exists at the source only; the stock just leaves.
	source := f.inventory.Store().Create(entity.Inventory{
		ItemID: 1, Locations: []int64{10}, TotalOnHand: 30,
		TotalExpected: 30, TotalAvailable: 30,
	})
	tr := f.transfers.Create(entity.Transfer{
		TransferFrom:   10,
		TransferTo:     20,
		TransferStatus: entity.TransferStatusPending,
		Items:          []entity.LineItem{{ItemID: 1, Amount: 10}},
	})

	_, err := f.service.Commit(context.Background(), tr.ID)
	require.NoError(t, err)

	from, err := f.inventory.Store().Get(source.ID)
	require.NoError(t, err)
	require.Equal(t, int64(20), from.TotalOnHand)
}

func TestCommitSkipsUnrelatedInventory(t *testing.T) {
	f := newCommitFixture(t)
	elsewhere := f.inventory.Store().Create(entity.Inventory{
		ItemID: 1, Locations: []int64{30}, TotalOnHand: 50,
		TotalExpected: 50, TotalAvailable: 50,
	})
	tr := f.transfers.Create(entity.Transfer{
		TransferFrom:   10,
		TransferTo:     20,
		TransferStatus: entity.TransferStatusPending,
		Items:          []entity.LineItem{{ItemID: 1, Amount: 10}},
	})

	_, err := f.service.Commit(context.Background(), tr.ID)
	require.NoError(t, err)

	got, err := f.inventory.Store().Get(elsewhere.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50), got.TotalOnHand)
}

func TestNotifyScheduled(t *testing.T) {
	f := newCommitFixture(t)

	f.service.NotifyScheduled(context.Background(), 7)
	require.Equal(t, []string{"Scheduled batch transfer 7"}, f.publisher.Messages())
}
