package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

// The DDL is shared by sqlite and postgres. Foreign keys are declared but
// sqlite does not enforce them unless asked to.
var tableDDL = map[string]string{
	repository.TableLocations: `
		CREATE TABLE locations (
			id INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			basic_info TEXT NOT NULL DEFAULT '',
			contacts TEXT NOT NULL DEFAULT ''
		)`,
	repository.TableServices: `
		CREATE TABLE services (
			id INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			treatment TEXT NOT NULL DEFAULT ''
		)`,
	repository.TableDoctors: `
		CREATE TABLE doctors (
			id INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			surname VARCHAR(255) NOT NULL,
			location_id INTEGER REFERENCES locations (id),
			basic_info TEXT NOT NULL DEFAULT '',
			service_id INTEGER REFERENCES services (id),
			is_responsible BOOLEAN NOT NULL DEFAULT FALSE,
			is_responsible_area BOOLEAN
		)`,
	repository.TableServiceLocations: `
		CREATE TABLE services_locations (
			service_id INTEGER NOT NULL REFERENCES services (id),
			location_id INTEGER NOT NULL REFERENCES locations (id),
			PRIMARY KEY (service_id, location_id)
		)`,
	repository.TableWhoWeAre: `
		CREATE TABLE who_we_are (
			content TEXT NOT NULL
		)`,
}

type schemaRepository struct {
	BaseRepository
}

func NewSchemaRepository(db *sqlx.DB, m *metrics.Metrics) repository.SchemaRepository {
	return &schemaRepository{NewBaseRepository(db, m)}
}

func (r *schemaRepository) HasTable(ctx context.Context, table string) (bool, error) {
	var query string
	switch r.db.DriverName() {
	case DriverSQLite:
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	case DriverPostgres:
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	default:
		return false, fmt.Errorf("unsupported driver %q", r.db.DriverName())
	}

	var count int
	if err := r.selectOne(ctx, "has_table", &count, query, table); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return count > 0, nil
}

func (r *schemaRepository) CreateTable(ctx context.Context, table string) error {
	ddl, ok := tableDDL[table]
	if !ok {
		return fmt.Errorf("no schema for table %q", table)
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

func (r *schemaRepository) InsertLocation(ctx context.Context, location *model.Location) error {
	query := `
		INSERT INTO locations (id, name, basic_info, contacts)
		VALUES (:id, :name, :basic_info, :contacts)
	`
	if err := r.namedExec(ctx, "insert_location", query, location); err != nil {
		return fmt.Errorf("failed to insert location %d: %w", location.ID, err)
	}
	return nil
}

func (r *schemaRepository) InsertService(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (id, name, description, treatment)
		VALUES (:id, :name, :description, :treatment)
	`
	if err := r.namedExec(ctx, "insert_service", query, service); err != nil {
		return fmt.Errorf("failed to insert service %d: %w", service.ID, err)
	}
	return nil
}

func (r *schemaRepository) InsertDoctor(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, name, surname, location_id, basic_info, service_id,
			is_responsible, is_responsible_area
		) VALUES (
			:id, :name, :surname, :location_id, :basic_info, :service_id,
			:is_responsible, :is_responsible_area
		)
	`
	if err := r.namedExec(ctx, "insert_doctor", query, doctor); err != nil {
		return fmt.Errorf("failed to insert doctor %d: %w", doctor.ID, err)
	}
	return nil
}

func (r *schemaRepository) InsertServiceLocation(ctx context.Context, sl *model.ServiceLocation) error {
	query := `
		INSERT INTO services_locations (service_id, location_id)
		VALUES (:service_id, :location_id)
	`
	if err := r.namedExec(ctx, "insert_service_location", query, sl); err != nil {
		return fmt.Errorf("failed to insert service %d at location %d: %w", sl.ServiceID, sl.LocationID, err)
	}
	return nil
}

func (r *schemaRepository) InsertWhoWeAre(ctx context.Context, w *model.WhoWeAre) error {
	query := `INSERT INTO who_we_are (content) VALUES (:content)`
	if err := r.namedExec(ctx, "insert_who_we_are", query, w); err != nil {
		return fmt.Errorf("failed to insert who we are: %w", err)
	}
	return nil
}
