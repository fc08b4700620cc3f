package dto

import "github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"

type AdjustMode string

const (
	ModeSet    AdjustMode = "set"
	ModeAdd    AdjustMode = "add"
	ModeRemove AdjustMode = "remove"
)

func (m AdjustMode) Valid() bool {
	switch m {
	case ModeSet, ModeAdd, ModeRemove:
		return true
	}
	return false
}

// AdjustStockInput is the adjustment intent. Quantity is the operand of Mode,
// always non-negative; the engine computes the signed delta.
type AdjustStockInput struct {
	MerchantID string
	ItemID     string
	// ProductID resolves the item when ItemID is not known, e.g. order
	// events reference products, not inventory item ids.
	ProductID  string
	Mode       AdjustMode
	Quantity   int
	LocationID string
	Reason     model.AdjustmentReason
	Reference  string
	OrderID    string

	// MovementType overrides the default "adjusted" ledger type, e.g. the
	// order listener records "sold" and "returned".
	MovementType model.MovementType

	// AllowOverRemoval opts into clamping at zero when a remove exceeds
	// current stock instead of failing with ErrInsufficientStock.
	AllowOverRemoval bool

	UserID   string
	UserName string
}

// StockProductInput provisions an inventory item for a catalog product.
// Quantities start at zero; stock arrives through adjustments.
type StockProductInput struct {
	MerchantID      string
	ProductID       string
	ReorderPoint    int
	ReorderQuantity int
	LocationIDs     []string
}

type TransferStockInput struct {
	MerchantID     string
	ItemID         string
	Quantity       int
	FromLocationID string
	ToLocationID   string
	Reference      string
	UserID         string
	UserName       string
}
