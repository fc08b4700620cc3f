package catalog

import (
	"context"
	"errors"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

type UseCase interface {
	GetProduct(ctx context.Context, merchantID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// SyncProduct upserts catalog identity pushed from the commerce
	// platform. The inventory module only ever reads the result.
	SyncProduct(ctx context.Context, input *dto.SyncProductInput) (*model.Product, error)

	// DeleteProduct removes identity the platform deleted. Stock history
	// for the product stays in the ledger untouched.
	DeleteProduct(ctx context.Context, merchantID, id string) error
}
