package model

import "time"

// StockStatus is a closed set. It is always derived from
// (total quantity, reorder point), never stored from user input.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// InventoryItem is the aggregate root for stock tracking. Catalog identity
// fields (product id, title, sku, barcode, price) are read-only context
// owned by the catalog module.
type InventoryItem struct {
	BaseModel
	MerchantID      string      `db:"merchant_id" json:"merchant_id"`
	ProductID       string      `db:"product_id" json:"product_id"`
	ProductTitle    string      `db:"product_title" json:"product_title"`
	SKU             string      `db:"sku" json:"sku"`
	Barcode         *string     `db:"barcode" json:"barcode"`
	Price           float64     `db:"price" json:"price"`
	CostPerItem     *float64    `db:"cost_per_item" json:"cost_per_item"`
	TotalQuantity   int         `db:"total_quantity" json:"total_quantity"`
	Reserved        int         `db:"reserved" json:"reserved"`
	Available       int         `db:"available" json:"available"`
	ReorderPoint    int         `db:"reorder_point" json:"reorder_point"`
	ReorderQuantity int         `db:"reorder_quantity" json:"reorder_quantity"`
	Status          StockStatus `db:"status" json:"status"`
	LastStockUpdate time.Time   `db:"last_stock_update" json:"last_stock_update"`
	Version         int64       `db:"version" json:"version"`

	Locations []StockByLocation `db:"-" json:"locations"` // Loaded separately, same transaction scope
}

// StockByLocation is the per-location breakdown owned by one InventoryItem.
// The item total must equal the sum of its location quantities.
type StockByLocation struct {
	ItemID     string `db:"item_id" json:"item_id"`
	LocationID string `db:"location_id" json:"location_id"`
	Quantity   int    `db:"quantity" json:"quantity"`
	Reserved   int    `db:"reserved" json:"reserved"`
	Available  int    `db:"available" json:"available"`
}

// Clone returns a deep copy so the adjustment engine can build a new
// snapshot without mutating the aggregate the caller read.
func (i *InventoryItem) Clone() *InventoryItem {
	cp := *i
	cp.Locations = make([]StockByLocation, len(i.Locations))
	copy(cp.Locations, i.Locations)
	return &cp
}

// LocationStock returns the breakdown row for a location, if stocked there.
func (i *InventoryItem) LocationStock(locationID string) *StockByLocation {
	for idx := range i.Locations {
		if i.Locations[idx].LocationID == locationID {
			return &i.Locations[idx]
		}
	}
	return nil
}
