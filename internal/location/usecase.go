package location

import (
	"context"
	"errors"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

var ErrLocationNotFound = errors.New("location not found")

type UseCase interface {
	GetLocation(ctx context.Context, merchantID, id string) (*model.Location, error)
	ListLocations(ctx context.Context, filters *dto.LocationFilters) ([]model.Location, int, error)
	UpsertLocation(ctx context.Context, input *dto.UpsertLocationInput) (*model.Location, error)
}
