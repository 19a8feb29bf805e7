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

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(db *sqlx.DB, m *metrics.Metrics) repository.ServiceRepository {
	return &serviceRepository{NewBaseRepository(db, m)}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT id, name, description, treatment FROM services ORDER BY id`

	services := []*model.Service{}
	if err := r.selectAll(ctx, "list_services", &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `SELECT id, name, description, treatment FROM services WHERE id = ?`

	var service model.Service
	err := r.selectOne(ctx, "get_service", &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

// ListByLocation returns the services offered at locationID.
func (r *serviceRepository) ListByLocation(ctx context.Context, locationID int64) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, treatment
		FROM services
		WHERE id IN (
			SELECT service_id FROM services_locations WHERE location_id = ?
		)
		ORDER BY id
	`

	services := []*model.Service{}
	if err := r.selectAll(ctx, "list_services_by_location", &services, query, locationID); err != nil {
		return nil, fmt.Errorf("failed to list services for location %d: %w", locationID, err)
	}
	return services, nil
}
