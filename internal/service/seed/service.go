package seed

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-directory/internal/fixtures"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

// TableResult is the outcome of initializing one table.
type TableResult struct {
	Table    string
	Created  bool
	Inserted int
	Failed   int
}

// Result lists the outcome per table, in creation order.
type Result struct {
	Tables []TableResult
}

// Created reports whether any table was created by the run.
func (r *Result) Created() bool {
	for _, t := range r.Tables {
		if t.Created {
			return true
		}
	}
	return false
}

type Initializer interface {
	Run(ctx context.Context, set *fixtures.Set) (*Result, error)
}

type Service struct {
	schema  repository.SchemaRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(schema repository.SchemaRepository, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		schema:  schema,
		logger:  log.WithComponent("seed"),
		metrics: m,
	}
}

// Run makes sure every table exists. A table is seeded from set only when
// this run created it, so running twice never duplicates rows. Failing to
// check or create a table aborts the run; a failing row is logged and skipped.
func (s *Service) Run(ctx context.Context, set *fixtures.Set) (*Result, error) {
	for _, skipped := range set.Skipped {
		s.logger.Warn(skipped, "fixture row could not be decoded", "file", skipped.File, "index", skipped.Index)
	}

	result := &Result{}
	for _, table := range repository.Tables {
		tr, err := s.ensureTable(ctx, table, set)
		if err != nil {
			return result, err
		}
		result.Tables = append(result.Tables, tr)
	}
	return result, nil
}

func (s *Service) ensureTable(ctx context.Context, table string, set *fixtures.Set) (TableResult, error) {
	tr := TableResult{Table: table}

	exists, err := s.schema.HasTable(ctx, table)
	if err != nil {
		return tr, fmt.Errorf("failed to initialize %s: %w", table, err)
	}
	if exists {
		s.logger.Debug("table already present, not seeding", "table", table)
		return tr, nil
	}

	if err := s.schema.CreateTable(ctx, table); err != nil {
		return tr, fmt.Errorf("failed to initialize %s: %w", table, err)
	}
	tr.Created = true
	if s.metrics != nil {
		s.metrics.SeedTablesCreated.Inc()
	}

	for _, insert := range s.rowInserts(table, set) {
		if err := insert(ctx); err != nil {
			tr.Failed++
			s.logger.Warn(err, "fixture row skipped", "table", table)
			if s.metrics != nil {
				s.metrics.SeedRowsFailed.WithLabelValues(table).Inc()
			}
			continue
		}
		tr.Inserted++
		if s.metrics != nil {
			s.metrics.SeedRowsInserted.WithLabelValues(table).Inc()
		}
	}

	s.logger.Info("table created and seeded", "table", table, "inserted", tr.Inserted, "failed", tr.Failed)
	return tr, nil
}

type insertFunc func(ctx context.Context) error

func (s *Service) rowInserts(table string, set *fixtures.Set) []insertFunc {
	var inserts []insertFunc

	switch table {
	case repository.TableLocations:
		for i := range set.Locations {
			row := &set.Locations[i]
			inserts = append(inserts, func(ctx context.Context) error { return s.schema.InsertLocation(ctx, row) })
		}
	case repository.TableServices:
		for i := range set.Services {
			row := &set.Services[i]
			inserts = append(inserts, func(ctx context.Context) error { return s.schema.InsertService(ctx, row) })
		}
	case repository.TableDoctors:
		for i := range set.Doctors {
			row := &set.Doctors[i]
			inserts = append(inserts, func(ctx context.Context) error { return s.schema.InsertDoctor(ctx, row) })
		}
	case repository.TableServiceLocations:
		for i := range set.ServiceLocations {
			row := &set.ServiceLocations[i]
			inserts = append(inserts, func(ctx context.Context) error { return s.schema.InsertServiceLocation(ctx, row) })
		}
	case repository.TableWhoWeAre:
		for i := range set.WhoWeAre {
			row := &set.WhoWeAre[i]
			inserts = append(inserts, func(ctx context.Context) error { return s.schema.InsertWhoWeAre(ctx, row) })
		}
	}

	return inserts
}
