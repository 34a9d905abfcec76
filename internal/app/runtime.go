package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/inventory"
	"github.com/cargohub/cargohub/internal/masterdata"
	"github.com/cargohub/cargohub/internal/notify"
	"github.com/cargohub/cargohub/internal/observability"
	"github.com/cargohub/cargohub/internal/orders"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/shipments"
	"github.com/cargohub/cargohub/internal/store"
	"github.com/cargohub/cargohub/internal/transfers"
)

// Runtime holds every wired component of the server process.
type Runtime struct {
	Registry  *store.Registry
	Provider  *auth.Provider
	Handler   *api.Handler
	Metrics   *observability.Metrics
	Transfers *transfers.Service
}

// RuntimeOptions carries the external dependencies. Both may be nil:
// without Redis the key cache is skipped, without a publisher the
// transfer notifications are dropped.
type RuntimeOptions struct {
	RedisClient *redis.Client
	Publisher   notify.Publisher
}

// NewRuntime builds the stores, loads their backing files and wires the
// referential index, services and API resources together.
func NewRuntime(cfg *Config, logger *slog.Logger, opts RuntimeOptions) (*Runtime, error) {
	dir := cfg.DataDir

	warehouseStore := masterdata.NewWarehouseStore(dir)
	locationStore := masterdata.NewLocationStore(dir)
	transferStore := transfers.NewStore(dir)
	itemStore := masterdata.NewItemStore(dir)
	itemLineStore := masterdata.NewItemLineStore(dir)
	itemGroupStore := masterdata.NewItemGroupStore(dir)
	itemTypeStore := masterdata.NewItemTypeStore(dir)
	inventoryStore := inventory.NewStore(dir)
	supplierStore := masterdata.NewSupplierStore(dir)
	orderStore := orders.NewStore(dir)
	clientStore := masterdata.NewClientStore(dir)
	shipmentStore := shipments.NewStore(dir)

	byKind := map[entity.Kind]store.Collection{
		entity.KindWarehouses:  warehouseStore,
		entity.KindLocations:   locationStore,
		entity.KindTransfers:   transferStore,
		entity.KindItems:       itemStore,
		entity.KindItemLines:   itemLineStore,
		entity.KindItemGroups:  itemGroupStore,
		entity.KindItemTypes:   itemTypeStore,
		entity.KindInventories: inventoryStore,
		entity.KindSuppliers:   supplierStore,
		entity.KindOrders:      orderStore,
		entity.KindClients:     clientStore,
		entity.KindShipments:   shipmentStore,
	}

	// Registration follows the canonical kind order; the registry's lock
	// ordering and the cascade reports both depend on it.
	registry := store.NewRegistry()
	for _, kind := range entity.Kinds() {
		if err := registry.Add(byKind[kind]); err != nil {
			return nil, fmt.Errorf("app: register store: %w", err)
		}
	}
	if err := registry.LoadAll(); err != nil {
		return nil, fmt.Errorf("app: load stores: %w", err)
	}

	index := refint.NewIndex()
	index.Declare(entity.KindWarehouses,
		refint.Check{Kind: entity.KindLocations, Scan: refint.ScanField(locationStore, func(l entity.Location, id int64) bool {
			return l.WarehouseID == id
		})},
		refint.Check{Kind: entity.KindOrders, Scan: refint.ScanField(orderStore, func(o entity.Order, id int64) bool {
			return o.WarehouseID == id
		})},
	)
	index.Declare(entity.KindLocations,
		refint.Check{Kind: entity.KindTransfers, Scan: refint.ScanField(transferStore, func(t entity.Transfer, id int64) bool {
			return t.TransferFrom == id || t.TransferTo == id
		})},
		refint.Check{Kind: entity.KindInventories, Scan: refint.ScanField(inventoryStore, func(inv entity.Inventory, id int64) bool {
			return inv.OccupiesLocation(id)
		})},
	)
	index.Declare(entity.KindItems,
		refint.Check{Kind: entity.KindTransfers, Scan: refint.ScanField(transferStore, func(t entity.Transfer, id int64) bool {
			return referencesItem(t.Items, id)
		})},
		refint.Check{Kind: entity.KindInventories, Scan: refint.ScanField(inventoryStore, func(inv entity.Inventory, id int64) bool {
			return inv.ItemID == id
		})},
		refint.Check{Kind: entity.KindOrders, Scan: refint.ScanField(orderStore, func(o entity.Order, id int64) bool {
			return referencesItem(o.Items, id)
		})},
		refint.Check{Kind: entity.KindShipments, Scan: refint.ScanField(shipmentStore, func(sh entity.Shipment, id int64) bool {
			return referencesItem(sh.Items, id)
		})},
	)
	index.Declare(entity.KindItemLines,
		refint.Check{Kind: entity.KindItems, Scan: refint.ScanField(itemStore, func(it entity.Item, id int64) bool {
			return it.ItemLineID == id
		})},
	)
	index.Declare(entity.KindItemGroups,
		refint.Check{Kind: entity.KindItems, Scan: refint.ScanField(itemStore, func(it entity.Item, id int64) bool {
			return it.ItemGroupID == id
		})},
	)
	index.Declare(entity.KindItemTypes,
		refint.Check{Kind: entity.KindItems, Scan: refint.ScanField(itemStore, func(it entity.Item, id int64) bool {
			return it.ItemTypeID == id
		})},
	)
	index.Declare(entity.KindSuppliers,
		refint.Check{Kind: entity.KindItems, Scan: refint.ScanField(itemStore, func(it entity.Item, id int64) bool {
			return it.SupplierID == id
		})},
	)
	index.Declare(entity.KindOrders,
		refint.Check{Kind: entity.KindShipments, Scan: refint.ScanField(shipmentStore, func(sh entity.Shipment, id int64) bool {
			return sh.OrderID == id
		})},
	)
	index.Declare(entity.KindClients,
		refint.Check{Kind: entity.KindOrders, Scan: refint.ScanField(orderStore, func(o entity.Order, id int64) bool {
			return o.ShipTo == id || o.BillTo == id
		})},
	)
	index.Declare(entity.KindShipments,
		refint.Check{Kind: entity.KindOrders, Scan: refint.ScanField(orderStore, func(o entity.Order, id int64) bool {
			return o.ShipmentID == id
		})},
	)

	validator := refint.NewValidator(registry, index)
	validator.Register(refint.TargetFor(warehouseStore))
	validator.Register(refint.TargetFor(locationStore))
	validator.Register(refint.TargetFor(transferStore))
	validator.Register(refint.TargetFor(itemStore))
	validator.Register(refint.TargetFor(itemLineStore))
	validator.Register(refint.TargetFor(itemGroupStore))
	validator.Register(refint.TargetFor(itemTypeStore))
	validator.Register(refint.TargetFor(inventoryStore))
	validator.Register(refint.TargetFor(supplierStore))
	validator.Register(refint.TargetFor(orderStore))
	validator.Register(refint.TargetFor(clientStore))
	validator.Register(refint.TargetFor(shipmentStore))

	inventoryService := inventory.NewService(inventoryStore)
	transferService := transfers.NewService(registry, transferStore, inventoryService, opts.Publisher, logger)

	resources := []api.Resource{
		masterdata.NewWarehousesResource(warehouseStore, locationStore, validator),
		masterdata.NewLocationsResource(locationStore, validator),
		transfers.NewResource(transferStore, validator, transferService),
		masterdata.NewItemsResource(itemStore, inventoryService, validator),
		masterdata.NewItemLinesResource(itemLineStore, itemStore, validator),
		masterdata.NewItemGroupsResource(itemGroupStore, itemStore, validator),
		masterdata.NewItemTypesResource(itemTypeStore, itemStore, validator),
		inventory.NewResource(inventoryStore, validator),
		masterdata.NewSuppliersResource(supplierStore, itemStore, validator),
		orders.NewResource(orderStore, validator),
		masterdata.NewClientsResource(clientStore, orderStore, validator),
		shipments.NewResource(shipmentStore, orderStore, validator),
	}

	users, err := auth.LoadKeys(cfg.APIKeysPath)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		logger.Warn("no api key file found, using bootstrap admin key", "path", cfg.APIKeysPath)
		users = []auth.User{auth.AdminUser(cfg.AdminAPIKey)}
	}
	provider := auth.NewProvider(users, opts.RedisClient, cfg.APIKeyTTL, logger)

	metrics := observability.NewMetrics()
	handler := api.NewHandler(logger, provider, resources...)

	return &Runtime{
		Registry:  registry,
		Provider:  provider,
		Handler:   handler,
		Metrics:   metrics,
		Transfers: transferService,
	}, nil
}

func referencesItem(lines []entity.LineItem, itemID int64) bool {
	for _, l := range lines {
		if l.ItemID == itemID {
			return true
		}
	}
	return false
}
