package repository

import (
	"context"

	"github.com/jwalitptl/clinic-directory/internal/model"
)

// Table names, in the order they have to be created.
const (
	TableLocations        = "locations"
	TableServices         = "services"
	TableDoctors          = "doctors"
	TableServiceLocations = "services_locations"
	TableWhoWeAre         = "who_we_are"
)

// Tables lists every table the initializer owns, referenced tables first.
var Tables = []string{
	TableLocations,
	TableServices,
	TableDoctors,
	TableServiceLocations,
	TableWhoWeAre,
}

// All repository interfaces in one file
type (
	// DoctorRepository reads doctors. Lists are ordered by surname then name, case-insensitively.
	DoctorRepository interface {
		List(ctx context.Context) ([]*model.Doctor, error)
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		ListByService(ctx context.Context, serviceID int64) ([]*model.Doctor, error)
	}

	LocationRepository interface {
		List(ctx context.Context) ([]*model.Location, error)
		Get(ctx context.Context, id int64) (*model.Location, error)
		ListByService(ctx context.Context, serviceID int64) ([]*model.Location, error)
	}

	ServiceRepository interface {
		List(ctx context.Context) ([]*model.Service, error)
		Get(ctx context.Context, id int64) (*model.Service, error)
		ListByLocation(ctx context.Context, locationID int64) ([]*model.Service, error)
	}

	WhoWeAreRepository interface {
		List(ctx context.Context) ([]*model.WhoWeAre, error)
	}

	// SchemaRepository creates the tables and writes fixture rows.
	SchemaRepository interface {
		HasTable(ctx context.Context, table string) (bool, error)
		CreateTable(ctx context.Context, table string) error
		InsertLocation(ctx context.Context, location *model.Location) error
		InsertService(ctx context.Context, service *model.Service) error
		InsertDoctor(ctx context.Context, doctor *model.Doctor) error
		InsertServiceLocation(ctx context.Context, sl *model.ServiceLocation) error
		InsertWhoWeAre(ctx context.Context, w *model.WhoWeAre) error
	}
)
