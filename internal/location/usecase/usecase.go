package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/pkg/logger"
)

type locationUseCase struct {
	repo   location.Repository
	logger logger.ZapLogger
}

func NewLocationUseCase(repo location.Repository, log logger.ZapLogger) location.UseCase {
	return &locationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *locationUseCase) GetLocation(ctx context.Context, merchantID, id string) (*model.Location, error) {
	loc, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, location.ErrLocationNotFound
	}
	return loc, nil
}

func (uc *locationUseCase) ListLocations(ctx context.Context, filters *dto.LocationFilters) ([]model.Location, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *locationUseCase) UpsertLocation(ctx context.Context, input *dto.UpsertLocationInput) (*model.Location, error) {
	now := time.Now()

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	loc := &model.Location{
		BaseModel: model.BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID: input.MerchantID,
		Name:       input.Name,
		Address1:   optional(input.Address1),
		Address2:   optional(input.Address2),
		City:       optional(input.City),
		Province:   optional(input.Province),
		Country:    optional(input.Country),
		Zip:        optional(input.Zip),
		IsDefault:  input.IsDefault,
		IsActive:   input.IsActive,
	}

	if err := uc.repo.Upsert(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
