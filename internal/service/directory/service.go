package directory

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-directory/internal/cache"
	"github.com/jwalitptl/clinic-directory/internal/model"
	"github.com/jwalitptl/clinic-directory/internal/repository"
	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
	"github.com/jwalitptl/clinic-directory/pkg/logger"
	"github.com/jwalitptl/clinic-directory/pkg/metrics"
)

// DirectoryServicer is the read side of the clinic directory. Get* methods
// return an apperrors NotFound error when the id does not exist.
type DirectoryServicer interface {
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	ListDoctorsByService(ctx context.Context, serviceID int64) ([]*model.Doctor, error)
	ListLocations(ctx context.Context) ([]*model.Location, error)
	GetLocation(ctx context.Context, id int64) (*model.Location, error)
	ListLocationsByService(ctx context.Context, serviceID int64) ([]*model.Location, error)
	ListServices(ctx context.Context) ([]*model.Service, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	ListServicesByLocation(ctx context.Context, locationID int64) ([]*model.Service, error)
	GetWhoWeAre(ctx context.Context) ([]*model.WhoWeAre, error)
}

// Repositories groups the stores the directory reads from.
type Repositories struct {
	Doctors   repository.DoctorRepository
	Locations repository.LocationRepository
	Services  repository.ServiceRepository
	WhoWeAre  repository.WhoWeAreRepository
}

var _ DirectoryServicer = (*Service)(nil)

type Service struct {
	repos   Repositories
	cache   cache.Cache
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewService builds the directory. c may be nil to disable caching.
func NewService(repos Repositories, c cache.Cache, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repos:   repos,
		cache:   c,
		logger:  log.WithComponent("directory"),
		metrics: m,
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return cached(ctx, s, "doctors", s.repos.Doctors.List)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return cached(ctx, s, fmt.Sprintf("doctors:%d", id), func(ctx context.Context) (*model.Doctor, error) {
		return s.repos.Doctors.Get(ctx, id)
	})
}

func (s *Service) ListDoctorsByService(ctx context.Context, serviceID int64) ([]*model.Doctor, error) {
	return cached(ctx, s, fmt.Sprintf("services:%d:doctors", serviceID), func(ctx context.Context) ([]*model.Doctor, error) {
		return s.repos.Doctors.ListByService(ctx, serviceID)
	})
}

func (s *Service) ListLocations(ctx context.Context) ([]*model.Location, error) {
	return cached(ctx, s, "locations", s.repos.Locations.List)
}

func (s *Service) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	return cached(ctx, s, fmt.Sprintf("locations:%d", id), func(ctx context.Context) (*model.Location, error) {
		return s.repos.Locations.Get(ctx, id)
	})
}

func (s *Service) ListLocationsByService(ctx context.Context, serviceID int64) ([]*model.Location, error) {
	return cached(ctx, s, fmt.Sprintf("services:%d:locations", serviceID), func(ctx context.Context) ([]*model.Location, error) {
		return s.repos.Locations.ListByService(ctx, serviceID)
	})
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	return cached(ctx, s, "services", s.repos.Services.List)
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	return cached(ctx, s, fmt.Sprintf("services:%d", id), func(ctx context.Context) (*model.Service, error) {
		return s.repos.Services.Get(ctx, id)
	})
}

func (s *Service) ListServicesByLocation(ctx context.Context, locationID int64) ([]*model.Service, error) {
	return cached(ctx, s, fmt.Sprintf("locations:%d:services", locationID), func(ctx context.Context) ([]*model.Service, error) {
		return s.repos.Services.ListByLocation(ctx, locationID)
	})
}

func (s *Service) GetWhoWeAre(ctx context.Context) ([]*model.WhoWeAre, error) {
	return cached(ctx, s, "whoweare", s.repos.WhoWeAre.List)
}

// cached serves key from the cache when possible. Cache failures fall back
// to the store; errors, including not found, are never cached.
func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return load(ctx)
	}

	var value T
	found, err := s.cache.Get(ctx, key, &value)
	if err != nil {
		s.logger.Warn(err, "cache read failed", "key", key)
	}
	if found {
		s.countCache(true)
		return value, nil
	}
	s.countCache(false)

	value, err = load(ctx)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error(err, "directory lookup failed", "key", key)
		}
		return value, err
	}

	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn(err, "cache write failed", "key", key)
	}
	return value, nil
}

func (s *Service) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.WithLabelValues(s.cache.Name()).Inc()
	} else {
		s.metrics.CacheMisses.WithLabelValues(s.cache.Name()).Inc()
	}
}
