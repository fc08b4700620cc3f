package catalog

import (
	"context"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, merchantID, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Upsert(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, merchantID, id string) error
}
