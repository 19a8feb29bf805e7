package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

type whoWeAreRepository struct {
	BaseRepository
}

func NewWhoWeAreRepository(db *sqlx.DB, m *metrics.Metrics) repository.WhoWeAreRepository {
	return &whoWeAreRepository{NewBaseRepository(db, m)}
}

func (r *whoWeAreRepository) List(ctx context.Context) ([]*model.WhoWeAre, error) {
	rows := []*model.WhoWeAre{}
	if err := r.selectAll(ctx, "list_who_we_are", &rows, `SELECT content FROM who_we_are`); err != nil {
		return nil, fmt.Errorf("failed to get who we are: %w", err)
	}
	return rows, nil
}
