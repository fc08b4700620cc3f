package stock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/inventory/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

const (
	testLocation  = "loc-main"
	testLocation2 = "loc-annex"
)

func knownLocations(id string) bool {
	return id == testLocation || id == testLocation2
}

func testItem(total, reserved, reorderPoint int) *model.InventoryItem {
	item := &model.InventoryItem{
		MerchantID:      "m-1",
		ProductID:       "p-1",
		ProductTitle:    "Canvas Tote",
		SKU:             "TOTE-001",
		TotalQuantity:   total,
		Reserved:        reserved,
		Available:       total - reserved,
		ReorderPoint:    reorderPoint,
		ReorderQuantity: 25,
		Status:          Classify(total, reorderPoint),
		Version:         3,
	}
	item.ID = "item-1"
	item.Locations = []model.StockByLocation{
		{ItemID: "item-1", LocationID: testLocation, Quantity: total, Reserved: reserved, Available: total - reserved},
	}
	return item
}

func adjustInput(mode dto.AdjustMode, qty int) *dto.AdjustStockInput {
	return &dto.AdjustStockInput{
		MerchantID: "m-1",
		ItemID:     "item-1",
		Mode:       mode,
		Quantity:   qty,
		LocationID: testLocation,
		Reason:     model.ReasonRecount,
		UserID:     "u-1",
		UserName:   "Dana",
	}
}

func TestClassify(t *testing.T) {
	// Zero is out of stock regardless of reorder point.
	for _, rp := range []int{0, 1, 20, 500} {
		assert.Equal(t, model.StatusOutOfStock, Classify(0, rp))
	}

	// At or below reorder point (and above zero) is low stock.
	assert.Equal(t, model.StatusLowStock, Classify(1, 1))
	assert.Equal(t, model.StatusLowStock, Classify(15, 20))
	assert.Equal(t, model.StatusLowStock, Classify(20, 20))

	// Above reorder point is in stock.
	assert.Equal(t, model.StatusInStock, Classify(21, 20))
	assert.Equal(t, model.StatusInStock, Classify(1, 0))
	assert.Equal(t, model.StatusInStock, Classify(500, 20))
}

func TestAdjustRemoveIntoLowStock(t *testing.T) {
	item := testItem(50, 0, 20)

	res, err := Adjust(item, adjustInput(dto.ModeRemove, 35), knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 15, res.Item.TotalQuantity)
	assert.Equal(t, model.StatusLowStock, res.Item.Status)
	assert.Equal(t, -35, res.Movement.Quantity)
	assert.Equal(t, 50, res.Movement.PreviousQuantity)
	assert.Equal(t, 15, res.Movement.NewQuantity)
	assert.Equal(t, model.MovementAdjusted, res.Movement.MovementType)
	require.NotNil(t, res.Movement.ToLocationID)
	assert.Equal(t, testLocation, *res.Movement.ToLocationID)
}

func TestAdjustAddStaysLowStock(t *testing.T) {
	item := testItem(10, 0, 20)

	res, err := Adjust(item, adjustInput(dto.ModeAdd, 5), knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 15, res.Item.TotalQuantity)
	assert.Equal(t, model.StatusLowStock, res.Item.Status)
	assert.Equal(t, 5, res.Movement.Quantity)
}

func TestAdjustSetToZero(t *testing.T) {
	item := testItem(5, 0, 10)

	res, err := Adjust(item, adjustInput(dto.ModeSet, 0), knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Item.TotalQuantity)
	assert.Equal(t, model.StatusOutOfStock, res.Item.Status)
	assert.Equal(t, -5, res.Movement.Quantity)
}

func TestAdjustOverRemovalFailsWithoutOptIn(t *testing.T) {
	item := testItem(100, 0, 20)

	res, err := Adjust(item, adjustInput(dto.ModeRemove, 150), knownLocations, time.Now())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 150, insufficient.Requested)
	assert.Equal(t, 100, insufficient.OnHand)

	// The input aggregate is untouched.
	assert.Equal(t, 100, item.TotalQuantity)
}

func TestAdjustOverRemovalClampsWithOptIn(t *testing.T) {
	item := testItem(100, 0, 20)

	in := adjustInput(dto.ModeRemove, 150)
	in.AllowOverRemoval = true

	res, err := Adjust(item, in, knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Item.TotalQuantity)
	assert.Equal(t, model.StatusOutOfStock, res.Item.Status)
	assert.Equal(t, -100, res.Movement.Quantity) // Clamped delta, not -150
	assert.Equal(t, 0, res.Movement.NewQuantity)
}

func TestAdjustSetIdempotent(t *testing.T) {
	item := testItem(40, 5, 10)

	res, err := Adjust(item, adjustInput(dto.ModeSet, 40), knownLocations, time.Now())
	require.NoError(t, err)

	// Zero-delta adjustments are legal; the movement is still recorded.
	assert.Equal(t, 0, res.Movement.Quantity)
	assert.Equal(t, item.TotalQuantity, res.Item.TotalQuantity)
	assert.Equal(t, item.Status, res.Item.Status)
	assert.Equal(t, item.Available, res.Item.Available)
}

func TestAdjustMovementReplayRoundTrip(t *testing.T) {
	item := testItem(37, 2, 10)

	for _, in := range []*dto.AdjustStockInput{
		adjustInput(dto.ModeAdd, 13),
		adjustInput(dto.ModeRemove, 7),
		adjustInput(dto.ModeSet, 91),
	} {
		res, err := Adjust(item, in, knownLocations, time.Now())
		require.NoError(t, err)

		assert.Equal(t, res.Movement.PreviousQuantity+res.Movement.Quantity, res.Movement.NewQuantity)
		assert.Equal(t, res.Movement.NewQuantity, res.Item.TotalQuantity)
		item = res.Item
	}
}

func TestAdjustDerivesAvailable(t *testing.T) {
	item := testItem(50, 10, 5)

	res, err := Adjust(item, adjustInput(dto.ModeSet, 30), knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 20, res.Item.Available)
	assert.False(t, res.Anomalous)
}

func TestAdjustClampsAvailableWhenReservedExceedsTotal(t *testing.T) {
	item := testItem(50, 10, 5)

	res, err := Adjust(item, adjustInput(dto.ModeSet, 4), knownLocations, time.Now())
	require.NoError(t, err)

	// reserved 10 > total 4: available clamps to zero and the adjustment
	// still goes through, flagged for the caller to log.
	assert.Equal(t, 0, res.Item.Available)
	assert.True(t, res.Anomalous)
	assert.Equal(t, 4, res.Item.TotalQuantity)
}

func TestAdjustKeepsLocationSumEqualToTotal(t *testing.T) {
	item := testItem(50, 0, 10)
	item.Locations = []model.StockByLocation{
		{ItemID: "item-1", LocationID: testLocation, Quantity: 20},
		{ItemID: "item-1", LocationID: testLocation2, Quantity: 30},
	}

	// Remove 35 at the main location: its 20 drain to zero and the
	// remaining 15 come out of the annex.
	res, err := Adjust(item, adjustInput(dto.ModeRemove, 35), knownLocations, time.Now())
	require.NoError(t, err)

	sum := 0
	for _, loc := range res.Item.Locations {
		sum += loc.Quantity
		assert.GreaterOrEqual(t, loc.Quantity, 0)
	}
	assert.Equal(t, res.Item.TotalQuantity, sum)
	assert.Equal(t, 15, sum)
}

func TestAdjustCreatesLocationRowWhenMissing(t *testing.T) {
	item := testItem(10, 0, 2)

	in := adjustInput(dto.ModeAdd, 5)
	in.LocationID = testLocation2

	res, err := Adjust(item, in, knownLocations, time.Now())
	require.NoError(t, err)

	row := res.Item.LocationStock(testLocation2)
	require.NotNil(t, row)
	assert.Equal(t, 5, row.Quantity)
	assert.Equal(t, 15, res.Item.TotalQuantity)
}

func TestAdjustValidation(t *testing.T) {
	item := testItem(10, 0, 2)
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*dto.AdjustStockInput)
		field  string
	}{
		{"negative quantity", func(in *dto.AdjustStockInput) { in.Quantity = -1 }, "quantity"},
		{"bad mode", func(in *dto.AdjustStockInput) { in.Mode = "increment" }, "mode"},
		{"missing location", func(in *dto.AdjustStockInput) { in.LocationID = "" }, "location_id"},
		{"unknown location", func(in *dto.AdjustStockInput) { in.LocationID = "loc-nowhere" }, "location_id"},
		{"bad reason", func(in *dto.AdjustStockInput) { in.Reason = "because" }, "reason"},
		{"bad movement type", func(in *dto.AdjustStockInput) { in.MovementType = "teleported" }, "movement_type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := adjustInput(dto.ModeAdd, 1)
			tc.mutate(in)

			_, err := Adjust(item, in, knownLocations, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestAdjustDoesNotMutateInput(t *testing.T) {
	item := testItem(50, 5, 10)

	_, err := Adjust(item, adjustInput(dto.ModeRemove, 20), knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 50, item.TotalQuantity)
	assert.Equal(t, 50, item.Locations[0].Quantity)
}

func TestTransferStock(t *testing.T) {
	item := testItem(50, 0, 10)

	res, err := TransferStock(item, &dto.TransferStockInput{
		MerchantID:     "m-1",
		ItemID:         "item-1",
		Quantity:       20,
		FromLocationID: testLocation,
		ToLocationID:   testLocation2,
		UserID:         "u-1",
	}, knownLocations, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 50, res.Item.TotalQuantity)
	assert.Equal(t, 30, res.Item.LocationStock(testLocation).Quantity)
	assert.Equal(t, 20, res.Item.LocationStock(testLocation2).Quantity)

	require.Len(t, res.Movements, 2)
	out, in := res.Movements[0], res.Movements[1]
	assert.Equal(t, -20, out.Quantity)
	assert.Equal(t, 20, in.Quantity)
	assert.Equal(t, out.NewQuantity, in.PreviousQuantity)
	assert.Equal(t, in.NewQuantity, item.TotalQuantity)
	assert.Equal(t, *out.Reference, *in.Reference)
	for _, m := range res.Movements {
		assert.Equal(t, model.MovementTransferred, m.MovementType)
		assert.Equal(t, testLocation, *m.FromLocationID)
		assert.Equal(t, testLocation2, *m.ToLocationID)
	}
}

func TestTransferStockInsufficientSource(t *testing.T) {
	item := testItem(50, 0, 10)

	_, err := TransferStock(item, &dto.TransferStockInput{
		Quantity:       60,
		FromLocationID: testLocation,
		ToLocationID:   testLocation2,
	}, knownLocations, time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
}
