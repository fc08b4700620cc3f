package location

import (
	"context"

	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/location/dto"
	"github.com/Hamzamamma/nova-creator-dashboard-sub001/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, merchantID, id string) (*model.Location, error)
	FindAll(ctx context.Context, filters *dto.LocationFilters) ([]model.Location, int, error)
	Upsert(ctx context.Context, loc *model.Location) error

	// ActiveLocationIDs backs adjustment validation; see
	// inventory.LocationDirectory.
	ActiveLocationIDs(ctx context.Context, merchantID string) (map[string]bool, error)
}
