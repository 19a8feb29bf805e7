package seed

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-directory/internal/config"
	"github.com/jwalitptl/clinic-directory/internal/fixtures"
	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	"github.com/jwalitptl/clinic-directory/internal/repository/sqlstore"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

func newDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlstore.NewDB(config.DatabaseConfig{Backend: config.BackendSQLite, Path: sqlstore.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func embedded(t *testing.T) *fixtures.Set {
	t.Helper()
	set, err := fixtures.Embedded()
	require.NoError(t, err)
	return set
}

func TestRun_CreatesAndSeeds(t *testing.T) {
	db := newDB(t)
	m := metrics.New("test")
	svc := NewService(sqlstore.NewSchemaRepository(db, nil), nil, m)

	result, err := svc.Run(context.Background(), embedded(t))
	require.NoError(t, err)

	require.Len(t, result.Tables, len(repository.Tables))
	assert.True(t, result.Created())
	for _, tr := range result.Tables {
		assert.True(t, tr.Created, tr.Table)
		assert.Zero(t, tr.Failed, tr.Table)
	}

	assert.Equal(t, 4, countRows(t, db, repository.TableLocations))
	assert.Equal(t, 6, countRows(t, db, repository.TableServices))
	assert.Equal(t, 11, countRows(t, db, repository.TableDoctors))
	assert.Equal(t, 12, countRows(t, db, repository.TableServiceLocations))
	assert.Equal(t, 1, countRows(t, db, repository.TableWhoWeAre))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.SeedTablesCreated))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.SeedRowsInserted.WithLabelValues(repository.TableDoctors)))
}

func TestRun_Idempotent(t *testing.T) {
	db := newDB(t)
	svc := NewService(sqlstore.NewSchemaRepository(db, nil), nil, nil)
	ctx := context.Background()

	_, err := svc.Run(ctx, embedded(t))
	require.NoError(t, err)

	second, err := svc.Run(ctx, embedded(t))
	require.NoError(t, err)

	assert.False(t, second.Created())
	for _, tr := range second.Tables {
		assert.Zero(t, tr.Inserted, tr.Table)
	}

	var tables int
	require.NoError(t, db.Get(&tables, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'"))
	assert.Equal(t, len(repository.Tables), tables)

	assert.Equal(t, 11, countRows(t, db, repository.TableDoctors))
	assert.Equal(t, 12, countRows(t, db, repository.TableServiceLocations))
	assert.Equal(t, 1, countRows(t, db, repository.TableWhoWeAre))
}

func TestRun_RowFailuresAreSkipped(t *testing.T) {
	db := newDB(t)
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.WarnLevel, Output: &buf, JSON: true})
	svc := NewService(sqlstore.NewSchemaRepository(db, nil), log, nil)

	set := embedded(t)
	// Same id twice: the second insert violates the primary key.
	set.Doctors = append(set.Doctors, model.Doctor{ID: 1, Name: "Copy", Surname: "Copy"})
	set.Skipped = append(set.Skipped, &fixtures.RowError{File: fixtures.DoctorsFile, Index: 12, Err: errors.New("bad json")})

	result, err := svc.Run(context.Background(), set)
	require.NoError(t, err)

	var doctors TableResult
	for _, tr := range result.Tables {
		if tr.Table == repository.TableDoctors {
			doctors = tr
		}
	}
	assert.Equal(t, 11, doctors.Inserted)
	assert.Equal(t, 1, doctors.Failed)
	assert.Equal(t, 11, countRows(t, db, repository.TableDoctors))

	assert.Contains(t, buf.String(), "fixture row skipped")
	assert.Contains(t, buf.String(), "fixture row could not be decoded")
}

type failingSchema struct {
	repository.SchemaRepository
	hasTableErr error
	createErr   error
	created     []string
}

func (f *failingSchema) HasTable(context.Context, string) (bool, error) {
	return false, f.hasTableErr
}

func (f *failingSchema) CreateTable(_ context.Context, table string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, table)
	return nil
}

func TestRun_TableErrorsAbort(t *testing.T) {
	empty := &fixtures.Set{}

	svc := NewService(&failingSchema{hasTableErr: errors.New("store unavailable")}, nil, nil)
	_, err := svc.Run(context.Background(), empty)
	assert.ErrorContains(t, err, "store unavailable")

	schema := &failingSchema{createErr: errors.New("permission denied")}
	svc = NewService(schema, nil, nil)
	result, err := svc.Run(context.Background(), empty)
	assert.ErrorContains(t, err, "failed to initialize locations")
	assert.Empty(t, result.Tables)
}

func TestRun_CreationOrder(t *testing.T) {
	schema := &failingSchema{}
	svc := NewService(schema, nil, nil)

	_, err := svc.Run(context.Background(), &fixtures.Set{})
	require.NoError(t, err)
	assert.Equal(t, repository.Tables, schema.created)
}
