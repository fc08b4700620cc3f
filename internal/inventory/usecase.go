package inventory

import (
	"context"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type UseCase interface {
	GetItem(ctx context.Context, merchantID, itemID string) (*model.InventoryItem, error)

	// StockProduct provisions an empty inventory item for a catalog
	// product. Idempotent: an already stocked product returns the
	// existing item.
	StockProduct(ctx context.Context, input *dto.StockProductInput) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)
	ListLowStock(ctx context.Context, merchantID string, page, pageSize int) ([]model.InventoryItem, int, error)

	// AdjustStock runs the full adjustment path: lock, read, pure adjust,
	// transactional commit with bounded retry on version conflict, alert
	// derivation. Returns the committed snapshot and ledger row.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, *model.StockMovement, error)

	TransferStock(ctx context.Context, input *dto.TransferStockInput) (*model.InventoryItem, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
	ListAlerts(ctx context.Context, filters *dto.AlertFilters) ([]model.InventoryAlert, int, error)
	MarkAlertRead(ctx context.Context, merchantID, alertID string) error
}
