package inventory

import (
	"context"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type Repository interface {
	// Items
	GetItem(ctx context.Context, merchantID, itemID string) (*model.InventoryItem, error)
	GetItemByProduct(ctx context.Context, merchantID, productID string) (*model.InventoryItem, error)
	FindAll(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)
	CreateItem(ctx context.Context, item *model.InventoryItem) error

	// CommitAdjustment persists the updated item, its location rows, and
	// the ledger rows in one transaction. The item update is guarded by
	// the version the caller read; a concurrent writer surfaces as
	// ErrVersionConflict with nothing persisted.
	CommitAdjustment(ctx context.Context, item *model.InventoryItem, movements ...*model.StockMovement) error

	// Movements (append-only; no update or delete exists)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	// Alerts
	AppendAlert(ctx context.Context, alert *model.InventoryAlert) error
	ListAlerts(ctx context.Context, filters *dto.AlertFilters) ([]model.InventoryAlert, int, error)
	MarkAlertRead(ctx context.Context, merchantID, alertID string) error
}

// LocationDirectory is the read-only view of stock locations the adjustment
// path validates against. Implemented by the location module.
type LocationDirectory interface {
	ActiveLocationIDs(ctx context.Context, merchantID string) (map[string]bool, error)
}

// ProductCatalog is the read-only product identity view the stocking path
// consults. Implemented by the catalog module.
type ProductCatalog interface {
	GetProduct(ctx context.Context, merchantID, productID string) (*model.Product, error)
}
