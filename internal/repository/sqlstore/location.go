package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

type locationRepository struct {
	BaseRepository
}

func NewLocationRepository(db *sqlx.DB, m *metrics.Metrics) repository.LocationRepository {
	return &locationRepository{NewBaseRepository(db, m)}
}

func (r *locationRepository) List(ctx context.Context) ([]*model.Location, error) {
	query := `SELECT id, name, basic_info, contacts FROM locations ORDER BY id`

	locations := []*model.Location{}
	if err := r.selectAll(ctx, "list_locations", &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) Get(ctx context.Context, id int64) (*model.Location, error) {
	query := `SELECT id, name, basic_info, contacts FROM locations WHERE id = ?`

	var location model.Location
	err := r.selectOne(ctx, "get_location", &location, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("location", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

// ListByService returns the locations offering serviceID.
func (r *locationRepository) ListByService(ctx context.Context, serviceID int64) ([]*model.Location, error) {
	query := `
		SELECT id, name, basic_info, contacts
		FROM locations
		WHERE id IN (
			SELECT location_id FROM services_locations WHERE service_id = ?
		)
		ORDER BY id
	`

	locations := []*model.Location{}
	if err := r.selectAll(ctx, "list_locations_by_service", &locations, query, serviceID); err != nil {
		return nil, fmt.Errorf("failed to list locations for service %d: %w", serviceID, err)
	}
	return locations, nil
}
