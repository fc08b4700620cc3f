package dto

import (
	"time"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type ItemFilters struct {
	MerchantID string
	ProductID  string
	LocationID string
	Status     model.StockStatus
	Search     string // Matches sku or product title
	Page       int
	PageSize   int
}

type MovementFilters struct {
	MerchantID   string
	ItemID       string
	LocationID   string
	MovementType model.MovementType
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

type AlertFilters struct {
	MerchantID string
	ItemID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
