// Package fixtures holds the static collections the store is seeded from.
// The collections ship embedded in the binary; a directory with the same
// file names can replace them at runtime.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/jwalitptl/clinic-directory/internal/model"
)

// Collection file names.
const (
	DoctorsFile          = "doctors.json"
	LocationsFile        = "locations.json"
	ServicesFile         = "services.json"
	ServiceLocationsFile = "services_locations.json"
	WhoWeAreFile         = "who_we_are.json"
)

//go:embed data/*.json
var embedded embed.FS

// RowError describes a fixture row that could not be decoded.
type RowError struct {
	File  string
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.File, e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Set is one full fixture load. Rows that failed to decode are left out of
// the collections and reported in Skipped.
type Set struct {
	Doctors          []model.Doctor
	Locations        []model.Location
	Services         []model.Service
	ServiceLocations []model.ServiceLocation
	WhoWeAre         []model.WhoWeAre
	Skipped          []*RowError
}

// Load reads the fixtures from dir, or the embedded copy when dir is empty.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return Embedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// Embedded returns the fixtures compiled into the binary.
func Embedded() (*Set, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads every collection from fsys. A missing or non-array file is an
// error; a single bad row is not.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{}
	var err error

	if set.Locations, err = decodeFile[model.Location](fsys, LocationsFile, set); err != nil {
		return nil, err
	}
	if set.Services, err = decodeFile[model.Service](fsys, ServicesFile, set); err != nil {
		return nil, err
	}
	if set.Doctors, err = decodeFile[model.Doctor](fsys, DoctorsFile, set); err != nil {
		return nil, err
	}
	if set.ServiceLocations, err = decodeFile[model.ServiceLocation](fsys, ServiceLocationsFile, set); err != nil {
		return nil, err
	}
	if set.WhoWeAre, err = decodeFile[model.WhoWeAre](fsys, WhoWeAreFile, set); err != nil {
		return nil, err
	}

	return set, nil
}

func decodeFile[T any](fsys fs.FS, name string, set *Set) ([]T, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture %s is not a JSON array: %w", name, err)
	}

	rows := make([]T, 0, len(raw))
	for i, r := range raw {
		var row T
		if err := json.Unmarshal(r, &row); err != nil {
			set.Skipped = append(set.Skipped, &RowError{File: name, Index: i, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
