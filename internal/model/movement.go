package model

import "time"

type MovementType string

const (
	MovementReceived    MovementType = "received"
	MovementSold        MovementType = "sold"
	MovementAdjusted    MovementType = "adjusted"
	MovementTransferred MovementType = "transferred"
	MovementReturned    MovementType = "returned"
	MovementDamaged     MovementType = "damaged"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementReceived, MovementSold, MovementAdjusted, MovementTransferred, MovementReturned, MovementDamaged:
		return true
	}
	return false
}

// AdjustmentReason is the closed reason-code set accepted on adjustments.
type AdjustmentReason string

const (
	ReasonRecount     AdjustmentReason = "recount"
	ReasonReceived    AdjustmentReason = "received"
	ReasonDamaged     AdjustmentReason = "damaged"
	ReasonTheft       AdjustmentReason = "theft"
	ReasonCorrection  AdjustmentReason = "correction"
	ReasonOrderSale   AdjustmentReason = "order_sale"
	ReasonOrderReturn AdjustmentReason = "order_return"
	ReasonTransfer    AdjustmentReason = "transfer"
)

func (r AdjustmentReason) Valid() bool {
	switch r {
	case ReasonRecount, ReasonReceived, ReasonDamaged, ReasonTheft,
		ReasonCorrection, ReasonOrderSale, ReasonOrderReturn, ReasonTransfer:
		return true
	}
	return false
}

// StockMovement is one row of the append-only audit ledger. Rows are never
// updated or deleted; newQuantity == previousQuantity + quantity always holds.
type StockMovement struct {
	ID               string           `db:"id" json:"id"`
	MerchantID       string           `db:"merchant_id" json:"merchant_id"`
	ItemID           string           `db:"item_id" json:"item_id"`
	ProductID        string           `db:"product_id" json:"product_id"`
	MovementType     MovementType     `db:"movement_type" json:"movement_type"`
	Quantity         int              `db:"quantity" json:"quantity"` // Signed delta
	PreviousQuantity int              `db:"previous_quantity" json:"previous_quantity"`
	NewQuantity      int              `db:"new_quantity" json:"new_quantity"`
	FromLocationID   *string          `db:"from_location_id" json:"from_location_id"`
	ToLocationID     *string          `db:"to_location_id" json:"to_location_id"`
	Reason           AdjustmentReason `db:"reason" json:"reason"`
	Reference        *string          `db:"reference" json:"reference"`
	OrderID          *string          `db:"order_id" json:"order_id"`
	UserID           *string          `db:"user_id" json:"user_id"`
	UserName         *string          `db:"user_name" json:"user_name"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
}
