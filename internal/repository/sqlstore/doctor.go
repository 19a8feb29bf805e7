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

const doctorColumns = `
	id, name, surname, location_id, basic_info, service_id,
	is_responsible, is_responsible_area
`

const doctorOrder = `ORDER BY LOWER(surname), LOWER(name), id`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB, m *metrics.Metrics) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db, m)}
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ` + doctorOrder

	doctors := []*model.Doctor{}
	if err := r.selectAll(ctx, "list_doctors", &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = ?`

	var doctor model.Doctor
	err := r.selectOne(ctx, "get_doctor", &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListByService(ctx context.Context, serviceID int64) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE service_id = ? ` + doctorOrder

	doctors := []*model.Doctor{}
	if err := r.selectAll(ctx, "list_doctors_by_service", &doctors, query, serviceID); err != nil {
		return nil, fmt.Errorf("failed to list doctors for service %d: %w", serviceID, err)
	}
	return doctors, nil
}
