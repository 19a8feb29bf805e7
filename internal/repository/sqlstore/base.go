package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// selectAll runs a `?`-placeholder query rebound for the current driver.
func (r *BaseRepository) selectAll(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...)
	r.metrics.ObserveQuery(op, start, err)
	return err
}

// selectOne is selectAll for a single row; sql.ErrNoRows is counted as a success.
func (r *BaseRepository) selectOne(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := r.db.GetContext(ctx, dest, r.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		r.metrics.ObserveQuery(op, start, nil)
	} else {
		r.metrics.ObserveQuery(op, start, err)
	}
	return err
}

func (r *BaseRepository) namedExec(ctx context.Context, op string, query string, arg interface{}) error {
	start := time.Now()
	_, err := r.db.NamedExecContext(ctx, query, arg)
	r.metrics.ObserveQuery(op, start, err)
	return err
}
