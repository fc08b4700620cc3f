package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

// overstockFactor: quantity above reorderPoint * factor counts as overstock.
// Only meaningful when a reorder point is configured.
const overstockFactor = 4

// DeriveAlert inspects a status transition and returns at most one fresh
// alert, or nil. It does not deduplicate against existing unread alerts;
// the reader merges.
func DeriveAlert(prev, next *model.InventoryItem, now time.Time) *model.InventoryAlert {
	if prev == nil || next == nil {
		return nil
	}

	if next.Status != prev.Status {
		switch next.Status {
		case model.StatusOutOfStock:
			return newAlert(next, model.AlertOutOfStock, 0,
				fmt.Sprintf("%s (%s) is out of stock", next.ProductTitle, next.SKU), now)
		case model.StatusLowStock:
			return newAlert(next, model.AlertLowStock, next.ReorderPoint,
				fmt.Sprintf("%s (%s) is low on stock: %d remaining, reorder point %d",
					next.ProductTitle, next.SKU, next.TotalQuantity, next.ReorderPoint), now)
		case model.StatusInStock:
			// Recovering to in_stock clears the condition; no notice needed.
		}
	}

	if next.ReorderPoint > 0 {
		threshold := next.ReorderPoint * overstockFactor
		if prev.TotalQuantity <= threshold && next.TotalQuantity > threshold {
			return newAlert(next, model.AlertOverstock, threshold,
				fmt.Sprintf("%s (%s) is overstocked: %d on hand, threshold %d",
					next.ProductTitle, next.SKU, next.TotalQuantity, threshold), now)
		}
	}

	return nil
}

func newAlert(item *model.InventoryItem, alertType model.AlertType, threshold int, message string, now time.Time) *model.InventoryAlert {
	return &model.InventoryAlert{
		ID:              uuid.New().String(),
		MerchantID:      item.MerchantID,
		ItemID:          item.ID,
		AlertType:       alertType,
		CurrentQuantity: item.TotalQuantity,
		Threshold:       threshold,
		Message:         message,
		CreatedAt:       now,
	}
}
