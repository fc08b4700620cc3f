package dto

type LocationFilters struct {
	MerchantID string
	IsActive   *bool
	Page       int
	PageSize   int
}

// UpsertLocationInput comes from store configuration sync. An empty ID
// creates a new location.
type UpsertLocationInput struct {
	ID         string
	MerchantID string
	Name       string
	Address1   string
	Address2   string
	City       string
	Province   string
	Country    string
	Zip        string
	IsDefault  bool
	IsActive   bool
}
