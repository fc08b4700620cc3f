package model

// Location is immutable reference data created by store configuration.
// The stock core only ever reads it.
type Location struct {
	BaseModel
	MerchantID string  `db:"merchant_id" json:"merchant_id"`
	Name       string  `db:"name" json:"name"`
	Address1   *string `db:"address1" json:"address1"`
	Address2   *string `db:"address2" json:"address2"`
	City       *string `db:"city" json:"city"`
	Province   *string `db:"province" json:"province"`
	Country    *string `db:"country" json:"country"`
	Zip        *string `db:"zip" json:"zip"`
	IsDefault  bool    `db:"is_default" json:"is_default"`
	IsActive   bool    `db:"is_active" json:"is_active"`
}
