package dto

type ProductFilters struct {
	MerchantID  string
	SearchQuery string
	IsActive    *bool
	Page        int
	PageSize    int
}

type SyncProductInput struct {
	ID          string
	MerchantID  string
	SKU         string
	Barcode     string
	Title       string
	Description string
	Price       float64
	CostPerItem *float64
	ImageURL    string
	IsActive    bool
}
