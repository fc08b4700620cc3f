package model

import "time"

type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
	AlertOverstock  AlertType = "overstock"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertLowStock, AlertOutOfStock, AlertOverstock:
		return true
	}
	return false
}

// InventoryAlert is a derived notice, not a ledger entry. Only is_read is
// ever mutated after creation.
type InventoryAlert struct {
	ID              string    `db:"id" json:"id"`
	MerchantID      string    `db:"merchant_id" json:"merchant_id"`
	ItemID          string    `db:"item_id" json:"item_id"`
	AlertType       AlertType `db:"alert_type" json:"alert_type"`
	CurrentQuantity int       `db:"current_quantity" json:"current_quantity"`
	Threshold       int       `db:"threshold" json:"threshold"`
	Message         string    `db:"message" json:"message"`
	IsRead          bool      `db:"is_read" json:"is_read"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
