package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/stock"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/cache"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

const (
	// maxCommitAttempts bounds the re-read/retry loop on version conflict.
	maxCommitAttempts = 3

	lockTTL          = 5 * time.Second
	lockAttempts     = 3
	lockRetryBackoff = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo      inventory.Repository
	locations inventory.LocationDirectory
	catalog   inventory.ProductCatalog
	cache     *cache.RedisClient
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, locations inventory.LocationDirectory, catalog inventory.ProductCatalog, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		locations: locations,
		catalog:   catalog,
		cache:     cache,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, merchantID, itemID string) (*model.InventoryItem, error) {
	item, err := uc.repo.GetItem(ctx, merchantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, inventory.ErrItemNotFound
	}
	return item, nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, merchantID string, page, pageSize int) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, &dto.ItemFilters{
		MerchantID: merchantID,
		Status:     model.StatusLowStock,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (uc *inventoryUseCase) StockProduct(ctx context.Context, input *dto.StockProductInput) (*model.InventoryItem, error) {
	if input.ProductID == "" {
		return nil, &stock.InvalidInputError{Field: "product_id", Detail: "must not be empty"}
	}
	if input.ReorderPoint < 0 || input.ReorderQuantity < 0 {
		return nil, &stock.InvalidInputError{Field: "reorder_point", Detail: "must not be negative"}
	}

	existing, err := uc.repo.GetItemByProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	p, err := uc.catalog.GetProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, &stock.InvalidInputError{Field: "product_id", Detail: "unknown product"}
		}
		return nil, err
	}

	active, err := uc.locations.ActiveLocationIDs(ctx, input.MerchantID)
	if err != nil {
		return nil, err
	}
	for _, locID := range input.LocationIDs {
		if !active[locID] {
			return nil, &stock.InvalidInputError{Field: "location_ids", Detail: fmt.Sprintf("unknown or inactive location %q", locID)}
		}
	}

	now := uc.now()
	item := &model.InventoryItem{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:      input.MerchantID,
		ProductID:       p.ID,
		ProductTitle:    p.Title,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Price:           p.Price,
		CostPerItem:     p.CostPerItem,
		ReorderPoint:    input.ReorderPoint,
		ReorderQuantity: input.ReorderQuantity,
		Status:          model.StatusOutOfStock,
		LastStockUpdate: now,
		Version:         1,
	}
	for _, locID := range input.LocationIDs {
		item.Locations = append(item.Locations, model.StockByLocation{
			ItemID:     item.ID,
			LocationID: locID,
		})
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, *model.StockMovement, error) {
	unlock, err := uc.lockItem(ctx, input.MerchantID, input.ItemID, input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	resolver, err := uc.locationResolver(ctx, input.MerchantID)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		item, err := uc.readItem(ctx, input)
		if err != nil {
			return nil, nil, err
		}

		now := uc.now()
		res, err := stock.Adjust(item, input, resolver, now)
		if err != nil {
			return nil, nil, err
		}
		if res.Anomalous {
			uc.logger.Warn("reserved exceeds total after adjustment, available clamped to zero",
				zap.String("item_id", item.ID),
				zap.Int("total", res.Item.TotalQuantity),
				zap.Int("reserved", res.Item.Reserved),
			)
		}

		err = uc.repo.CommitAdjustment(ctx, res.Item, res.Movement)
		if errors.Is(err, inventory.ErrVersionConflict) {
			uc.logger.Warn("version conflict committing adjustment, retrying",
				zap.String("item_id", item.ID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		if alert := stock.DeriveAlert(item, res.Item, now); alert != nil {
			// The adjustment is already durable; a failed alert write is
			// logged, not surfaced.
			if err := uc.repo.AppendAlert(ctx, alert); err != nil {
				uc.logger.Error("failed to append inventory alert",
					zap.String("item_id", item.ID),
					zap.Error(err),
				)
			}
		}

		return res.Item, res.Movement, nil
	}

	return nil, nil, fmt.Errorf("adjustment gave up after %d attempts: %w", maxCommitAttempts, inventory.ErrVersionConflict)
}

func (uc *inventoryUseCase) TransferStock(ctx context.Context, input *dto.TransferStockInput) (*model.InventoryItem, error) {
	unlock, err := uc.lockItem(ctx, input.MerchantID, input.ItemID, "")
	if err != nil {
		return nil, err
	}
	defer unlock()

	resolver, err := uc.locationResolver(ctx, input.MerchantID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		item, err := uc.repo.GetItem(ctx, input.MerchantID, input.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, inventory.ErrItemNotFound
		}

		res, err := stock.TransferStock(item, input, resolver, uc.now())
		if err != nil {
			return nil, err
		}

		err = uc.repo.CommitAdjustment(ctx, res.Item, res.Movements...)
		if errors.Is(err, inventory.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return res.Item, nil
	}

	return nil, fmt.Errorf("transfer gave up after %d attempts: %w", maxCommitAttempts, inventory.ErrVersionConflict)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) ListAlerts(ctx context.Context, filters *dto.AlertFilters) ([]model.InventoryAlert, int, error) {
	return uc.repo.ListAlerts(ctx, filters)
}

func (uc *inventoryUseCase) MarkAlertRead(ctx context.Context, merchantID, alertID string) error {
	return uc.repo.MarkAlertRead(ctx, merchantID, alertID)
}

func (uc *inventoryUseCase) readItem(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error) {
	if input.ItemID != "" {
		item, err := uc.repo.GetItem(ctx, input.MerchantID, input.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, inventory.ErrItemNotFound
		}
		return item, nil
	}

	item, err := uc.repo.GetItemByProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, inventory.ErrItemNotFound
	}
	return item, nil
}

func (uc *inventoryUseCase) locationResolver(ctx context.Context, merchantID string) (stock.LocationResolver, error) {
	ids, err := uc.locations.ActiveLocationIDs(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return func(locationID string) bool { return ids[locationID] }, nil
}

// lockItem serializes writers on the same aggregate. The lock narrows the
// race window; the version check in CommitAdjustment is the correctness
// guard.
func (uc *inventoryUseCase) lockItem(ctx context.Context, merchantID, itemID, productID string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	key := itemID
	if key == "" {
		key = productID
	}
	lockKey := fmt.Sprintf("lock:inventory:%s:%s", merchantID, key)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockRetryBackoff)
	}
	if !acquired {
		return nil, inventory.ErrLockNotAcquired
	}

	return func() {
		if err := uc.cache.ReleaseLock(context.Background(), lockKey, lockValue); err != nil {
			uc.logger.Error("failed to release inventory lock", zap.Error(err))
		}
	}, nil
}
