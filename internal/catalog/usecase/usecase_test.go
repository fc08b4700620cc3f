package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/catalog/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type fakeRepo struct {
	products map[string]*model.Product
}

func (f *fakeRepo) FindByID(_ context.Context, merchantID, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok || p.MerchantID != merchantID {
		return nil, nil
	}
	return p, nil
}

func (f *fakeRepo) FindAll(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if p.MerchantID == filters.MerchantID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Upsert(_ context.Context, p *model.Product) error {
	if f.products == nil {
		f.products = map[string]*model.Product{}
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, merchantID, id string) error {
	if p, ok := f.products[id]; ok && p.MerchantID == merchantID {
		delete(f.products, id)
	}
	return nil
}

func newTestUseCase(repo *fakeRepo) catalog.UseCase {
	// nil cache and nil ES exercise the DB-only path.
	return NewCatalogUseCase(repo, nil, nil, logger.NewNop())
}

func TestSyncProductUpserts(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	p, err := uc.SyncProduct(context.Background(), &dto.SyncProductInput{
		ID:         "p-1",
		MerchantID: "m-1",
		SKU:        "TOTE-001",
		Title:      "Canvas Tote",
		Price:      24.0,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.Nil(t, p.Barcode)

	// Re-sync with changed identity overwrites in place.
	p2, err := uc.SyncProduct(context.Background(), &dto.SyncProductInput{
		ID:         "p-1",
		MerchantID: "m-1",
		SKU:        "TOTE-001",
		Barcode:    "0123456789",
		Title:      "Canvas Tote XL",
		Price:      29.0,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Canvas Tote XL", p2.Title)
	require.NotNil(t, p2.Barcode)

	got, err := uc.GetProduct(context.Background(), "m-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Canvas Tote XL", got.Title)
}

func TestGetProductNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	_, err := uc.GetProduct(context.Background(), "m-1", "p-ghost")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := &fakeRepo{products: map[string]*model.Product{
		"p-1": {BaseModel: model.BaseModel{ID: "p-1"}, MerchantID: "m-1", SKU: "TOTE-001", Title: "Canvas Tote"},
	}}
	uc := newTestUseCase(repo)

	require.NoError(t, uc.DeleteProduct(context.Background(), "m-1", "p-1"))
	_, err := uc.GetProduct(context.Background(), "m-1", "p-1")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	// Deleting again is a no-op.
	require.NoError(t, uc.DeleteProduct(context.Background(), "m-1", "p-1"))
}

func TestListProductsFallsBackToRepo(t *testing.T) {
	repo := &fakeRepo{products: map[string]*model.Product{
		"p-1": {BaseModel: model.BaseModel{ID: "p-1"}, MerchantID: "m-1", SKU: "TOTE-001", Title: "Canvas Tote"},
	}}
	uc := newTestUseCase(repo)

	products, total, err := uc.ListProducts(context.Background(), &dto.ProductFilters{
		MerchantID:  "m-1",
		SearchQuery: "tote",
		Page:        1,
		PageSize:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "p-1", products[0].ID)
}
