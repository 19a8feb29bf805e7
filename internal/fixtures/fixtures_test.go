package fixtures

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	set, err := Embedded()
	require.NoError(t, err)

	assert.Len(t, set.Locations, 4)
	assert.Len(t, set.Services, 6)
	assert.Len(t, set.Doctors, 11)
	assert.Len(t, set.ServiceLocations, 12)
	assert.Len(t, set.WhoWeAre, 1)
	assert.Empty(t, set.Skipped)

	first := set.Doctors[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Rossi", first.Surname)
	require.NotNil(t, first.IsResponsibleArea)
	assert.True(t, *first.IsResponsibleArea)
	assert.Nil(t, set.Doctors[1].IsResponsibleArea)
}

func TestEmbedded_ReferencesResolve(t *testing.T) {
	set, err := Embedded()
	require.NoError(t, err)

	locations := map[int64]bool{}
	for _, l := range set.Locations {
		locations[l.ID] = true
	}
	services := map[int64]bool{}
	for _, s := range set.Services {
		services[s.ID] = true
	}

	for _, sl := range set.ServiceLocations {
		assert.True(t, services[sl.ServiceID], "service %d", sl.ServiceID)
		assert.True(t, locations[sl.LocationID], "location %d", sl.LocationID)
	}
	for _, d := range set.Doctors {
		assert.True(t, services[d.ServiceID], "doctor %d service", d.ID)
		assert.True(t, locations[d.LocationID], "doctor %d location", d.ID)
	}
}

func validFS() fstest.MapFS {
	return fstest.MapFS{
		LocationsFile:        {Data: []byte(`[{"id":1,"name":"Central","basicInfo":"","contacts":""}]`)},
		ServicesFile:         {Data: []byte(`[{"id":1,"name":"Cardiology","description":"","treatment":""}]`)},
		DoctorsFile:          {Data: []byte(`[{"id":1,"name":"Ada","surname":"Byron","locationId":1,"serviceId":1,"isResponsible":true}]`)},
		ServiceLocationsFile: {Data: []byte(`[{"serviceId":1,"locationId":1}]`)},
		WhoWeAreFile:         {Data: []byte(`[{"content":"hello"}]`)},
	}
}

func TestLoadFS_SkipsMalformedRows(t *testing.T) {
	fsys := validFS()
	fsys[DoctorsFile] = &fstest.MapFile{Data: []byte(`[
		{"id":1,"name":"Ada","surname":"Byron","locationId":1,"serviceId":1,"isResponsible":true},
		{"id":"two","name":"Bad"},
		{"id":3,"name":"Grace","surname":"Hopper","locationId":1,"serviceId":1,"isResponsible":false}
	]`)}

	set, err := LoadFS(fsys)
	require.NoError(t, err)

	assert.Len(t, set.Doctors, 2)
	require.Len(t, set.Skipped, 1)
	assert.Equal(t, DoctorsFile, set.Skipped[0].File)
	assert.Equal(t, 1, set.Skipped[0].Index)
	assert.Contains(t, set.Skipped[0].Error(), "doctors.json[1]")
}

func TestLoadFS_MissingFile(t *testing.T) {
	fsys := validFS()
	delete(fsys, ServicesFile)

	_, err := LoadFS(fsys)
	assert.ErrorContains(t, err, ServicesFile)
}

func TestLoadFS_NotAnArray(t *testing.T) {
	fsys := validFS()
	fsys[WhoWeAreFile] = &fstest.MapFile{Data: []byte(`{"content":"hello"}`)}

	_, err := LoadFS(fsys)
	assert.ErrorContains(t, err, "not a JSON array")
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	for name, f := range validFS() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), f.Data, 0o600))
	}

	set, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, set.Doctors, 1)
	assert.Equal(t, "hello", set.WhoWeAre[0].Content)

	_, err = Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, DoctorsFile))
	assert.ErrorContains(t, err, "not a directory")
}
