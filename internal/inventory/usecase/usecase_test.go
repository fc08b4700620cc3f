package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/stock"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type fakeRepo struct {
	item      *model.InventoryItem
	movements []*model.StockMovement
	alerts    []*model.InventoryAlert

	// conflicts makes the next N commits fail with ErrVersionConflict,
	// bumping the stored version each time like a concurrent writer would.
	conflicts int
	commits   int
}

func (f *fakeRepo) GetItem(_ context.Context, merchantID, itemID string) (*model.InventoryItem, error) {
	if f.item == nil || f.item.MerchantID != merchantID || f.item.ID != itemID {
		return nil, nil
	}
	return f.item.Clone(), nil
}

func (f *fakeRepo) GetItemByProduct(_ context.Context, merchantID, productID string) (*model.InventoryItem, error) {
	if f.item == nil || f.item.MerchantID != merchantID || f.item.ProductID != productID {
		return nil, nil
	}
	return f.item.Clone(), nil
}

func (f *fakeRepo) FindAll(_ context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	if f.item == nil {
		return nil, 0, nil
	}
	if filters.Status != "" && f.item.Status != filters.Status {
		return nil, 0, nil
	}
	return []model.InventoryItem{*f.item.Clone()}, 1, nil
}

func (f *fakeRepo) CreateItem(_ context.Context, item *model.InventoryItem) error {
	f.item = item.Clone()
	return nil
}

func (f *fakeRepo) CommitAdjustment(_ context.Context, item *model.InventoryItem, movements ...*model.StockMovement) error {
	f.commits++
	if f.conflicts > 0 {
		f.conflicts--
		// Simulate the concurrent writer that won the race.
		f.item.Version++
		return inventory.ErrVersionConflict
	}
	if item.Version != f.item.Version {
		return inventory.ErrVersionConflict
	}
	f.item = item.Clone()
	f.item.Version++
	f.movements = append(f.movements, movements...)
	return nil
}

func (f *fakeRepo) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.StockMovement, int, error) {
	out := make([]model.StockMovement, 0, len(f.movements))
	for i := len(f.movements) - 1; i >= 0; i-- {
		out = append(out, *f.movements[i])
	}
	return out, len(out), nil
}

func (f *fakeRepo) AppendAlert(_ context.Context, alert *model.InventoryAlert) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeRepo) ListAlerts(_ context.Context, _ *dto.AlertFilters) ([]model.InventoryAlert, int, error) {
	out := make([]model.InventoryAlert, 0, len(f.alerts))
	for _, a := range f.alerts {
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeRepo) MarkAlertRead(_ context.Context, merchantID, alertID string) error {
	for _, a := range f.alerts {
		if a.MerchantID == merchantID && a.ID == alertID {
			a.IsRead = true
			return nil
		}
	}
	return inventory.ErrAlertNotFound
}

type fakeDirectory struct{ ids map[string]bool }

func (f *fakeDirectory) ActiveLocationIDs(_ context.Context, _ string) (map[string]bool, error) {
	return f.ids, nil
}

type fakeCatalog struct{ products map[string]*model.Product }

func (f *fakeCatalog) GetProduct(_ context.Context, merchantID, productID string) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok || p.MerchantID != merchantID {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func newTestUseCase(repo *fakeRepo) inventory.UseCase {
	dir := &fakeDirectory{ids: map[string]bool{"loc-main": true, "loc-annex": true}}
	cat := &fakeCatalog{products: map[string]*model.Product{
		"p-2": {
			BaseModel:  model.BaseModel{ID: "p-2"},
			MerchantID: "m-1",
			SKU:        "MUG-002",
			Title:      "Enamel Mug",
			Price:      14.5,
			IsActive:   true,
		},
	}}
	return NewInventoryUseCase(repo, dir, cat, nil, logger.NewNop())
}

func seedItem(total, reserved, reorderPoint int) *model.InventoryItem {
	item := &model.InventoryItem{
		MerchantID:    "m-1",
		ProductID:     "p-1",
		ProductTitle:  "Canvas Tote",
		SKU:           "TOTE-001",
		TotalQuantity: total,
		Reserved:      reserved,
		Available:     total - reserved,
		ReorderPoint:  reorderPoint,
		Status:        stock.Classify(total, reorderPoint),
		Version:       1,
	}
	item.ID = "item-1"
	item.Locations = []model.StockByLocation{
		{ItemID: "item-1", LocationID: "loc-main", Quantity: total, Reserved: reserved, Available: total - reserved},
	}
	return item
}

func adjustInput(mode dto.AdjustMode, qty int) *dto.AdjustStockInput {
	return &dto.AdjustStockInput{
		MerchantID: "m-1",
		ItemID:     "item-1",
		Mode:       mode,
		Quantity:   qty,
		LocationID: "loc-main",
		Reason:     model.ReasonRecount,
		UserID:     "u-1",
	}
}

func TestAdjustStockCommits(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 20)}
	uc := newTestUseCase(repo)

	item, movement, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeRemove, 35))
	require.NoError(t, err)

	assert.Equal(t, 15, item.TotalQuantity)
	assert.Equal(t, model.StatusLowStock, item.Status)
	assert.Equal(t, -35, movement.Quantity)

	// Both the item and the ledger row landed in the same commit.
	require.Len(t, repo.movements, 1)
	assert.Equal(t, 15, repo.item.TotalQuantity)
}

func TestAdjustStockRetriesOnVersionConflict(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 20), conflicts: 1}
	uc := newTestUseCase(repo)

	item, _, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeRemove, 10))
	require.NoError(t, err)

	// First commit lost the race, second succeeded against the re-read item.
	assert.Equal(t, 2, repo.commits)
	assert.Equal(t, 40, item.TotalQuantity)
	require.Len(t, repo.movements, 1)
}

func TestAdjustStockGivesUpAfterBoundedRetries(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 20), conflicts: 10}
	uc := newTestUseCase(repo)

	_, _, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeRemove, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrVersionConflict)
	assert.Equal(t, maxCommitAttempts, repo.commits)

	// Nothing was appended to the ledger.
	assert.Empty(t, repo.movements)
}

func TestAdjustStockInsufficientStockLeavesStateUntouched(t *testing.T) {
	repo := &fakeRepo{item: seedItem(100, 0, 20)}
	uc := newTestUseCase(repo)

	_, _, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeRemove, 150))
	require.Error(t, err)
	assert.ErrorIs(t, err, stock.ErrInsufficientStock)

	assert.Equal(t, 0, repo.commits)
	assert.Equal(t, 100, repo.item.TotalQuantity)
	assert.Empty(t, repo.movements)
}

func TestAdjustStockPersistsAlertOnTransition(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 20)}
	uc := newTestUseCase(repo)

	_, _, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeSet, 0))
	require.NoError(t, err)

	require.Len(t, repo.alerts, 1)
	assert.Equal(t, model.AlertOutOfStock, repo.alerts[0].AlertType)

	// Marking read is the only mutation alerts allow.
	require.NoError(t, uc.MarkAlertRead(context.Background(), "m-1", repo.alerts[0].ID))
	assert.True(t, repo.alerts[0].IsRead)
}

func TestAdjustStockResolvesItemByProduct(t *testing.T) {
	repo := &fakeRepo{item: seedItem(10, 0, 2)}
	uc := newTestUseCase(repo)

	in := adjustInput(dto.ModeRemove, 3)
	in.ItemID = ""
	in.ProductID = "p-1"
	in.MovementType = model.MovementSold
	in.Reason = model.ReasonOrderSale
	in.OrderID = "ord-77"

	_, movement, err := uc.AdjustStock(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, model.MovementSold, movement.MovementType)
	require.NotNil(t, movement.OrderID)
	assert.Equal(t, "ord-77", *movement.OrderID)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	repo := &fakeRepo{item: seedItem(10, 0, 2)}
	uc := newTestUseCase(repo)

	in := adjustInput(dto.ModeAdd, 1)
	in.ItemID = "item-ghost"

	_, _, err := uc.AdjustStock(context.Background(), in)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestTransferStockCommitsPairedMovements(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 10)}
	uc := newTestUseCase(repo)

	item, err := uc.TransferStock(context.Background(), &dto.TransferStockInput{
		MerchantID:     "m-1",
		ItemID:         "item-1",
		Quantity:       20,
		FromLocationID: "loc-main",
		ToLocationID:   "loc-annex",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, item.TotalQuantity)
	require.Len(t, repo.movements, 2)
	assert.Equal(t, -20, repo.movements[0].Quantity)
	assert.Equal(t, 20, repo.movements[1].Quantity)
}

func TestListLowStockFiltersByStatus(t *testing.T) {
	repo := &fakeRepo{item: seedItem(15, 0, 20)}
	uc := newTestUseCase(repo)

	items, total, err := uc.ListLowStock(context.Background(), "m-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusLowStock, items[0].Status)
}

func TestStockProductProvisionsEmptyItem(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	item, err := uc.StockProduct(context.Background(), &dto.StockProductInput{
		MerchantID:      "m-1",
		ProductID:       "p-2",
		ReorderPoint:    5,
		ReorderQuantity: 10,
		LocationIDs:     []string{"loc-main"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Enamel Mug", item.ProductTitle)
	assert.Equal(t, "MUG-002", item.SKU)
	assert.Equal(t, 0, item.TotalQuantity)
	assert.Equal(t, model.StatusOutOfStock, item.Status)
	assert.EqualValues(t, 1, item.Version)
	require.Len(t, item.Locations, 1)
	assert.Equal(t, "loc-main", item.Locations[0].LocationID)
}

func TestStockProductIsIdempotent(t *testing.T) {
	repo := &fakeRepo{item: seedItem(50, 0, 20)}
	uc := newTestUseCase(repo)

	item, err := uc.StockProduct(context.Background(), &dto.StockProductInput{
		MerchantID: "m-1",
		ProductID:  "p-1",
	})
	require.NoError(t, err)

	// The existing item comes back untouched instead of a duplicate.
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, 50, item.TotalQuantity)
}

func TestStockProductRejectsUnknownProduct(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.StockProduct(context.Background(), &dto.StockProductInput{
		MerchantID: "m-1",
		ProductID:  "p-ghost",
	})
	require.Error(t, err)

	var invalid *stock.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "product_id", invalid.Field)
}

func TestStockProductRejectsInactiveLocation(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.StockProduct(context.Background(), &dto.StockProductInput{
		MerchantID:  "m-1",
		ProductID:   "p-2",
		LocationIDs: []string{"loc-ghost"},
	})
	require.Error(t, err)

	var invalid *stock.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "location_ids", invalid.Field)
}

func TestAdjustStockZeroDeltaStillRecordsMovement(t *testing.T) {
	repo := &fakeRepo{item: seedItem(40, 0, 10)}
	uc := newTestUseCase(repo)

	item, movement, err := uc.AdjustStock(context.Background(), adjustInput(dto.ModeSet, 40))
	require.NoError(t, err)

	assert.Equal(t, 0, movement.Quantity)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, 40, item.TotalQuantity)
	assert.False(t, item.UpdatedAt.IsZero())
}
