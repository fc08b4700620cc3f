package model

// Product is catalog identity synced from the commerce platform. The
// inventory core treats these fields as given, read-only context.
type Product struct {
	BaseModel
	MerchantID  string   `db:"merchant_id" json:"merchant_id"`
	SKU         string   `db:"sku" json:"sku"`
	Barcode     *string  `db:"barcode" json:"barcode"`
	Title       string   `db:"title" json:"title"`
	Description *string  `db:"description" json:"description"`
	Price       float64  `db:"price" json:"price"`
	CostPerItem *float64 `db:"cost_per_item" json:"cost_per_item"`
	ImageURL    *string  `db:"image_url" json:"image_url"`
	IsActive    bool     `db:"is_active" json:"is_active"`
}
