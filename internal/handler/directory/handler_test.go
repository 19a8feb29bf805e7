package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-directory/internal/model"
	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
)

// stubDirectory knows doctor 1 and location 1; err, when set, fails every call.
type stubDirectory struct {
	err error
}

func (s *stubDirectory) ListDoctors(context.Context) ([]*model.Doctor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*model.Doctor{{ID: 1, Name: "Marco", Surname: "Rossi"}}, nil
}

func (s *stubDirectory) GetDoctor(_ context.Context, id int64) (*model.Doctor, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id != 1 {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return &model.Doctor{ID: 1, Name: "Marco", Surname: "Rossi"}, nil
}

func (s *stubDirectory) ListDoctorsByService(context.Context, int64) ([]*model.Doctor, error) {
	return []*model.Doctor{}, s.err
}

func (s *stubDirectory) ListLocations(context.Context) ([]*model.Location, error) {
	return []*model.Location{{ID: 1, Name: "Central"}}, s.err
}

func (s *stubDirectory) GetLocation(_ context.Context, id int64) (*model.Location, error) {
	if id != 1 {
		return nil, apperrors.NotFound("location", nil)
	}
	return &model.Location{ID: 1, Name: "Central"}, s.err
}

func (s *stubDirectory) ListLocationsByService(context.Context, int64) ([]*model.Location, error) {
	return []*model.Location{}, s.err
}

func (s *stubDirectory) ListServices(context.Context) ([]*model.Service, error) {
	return []*model.Service{}, s.err
}

func (s *stubDirectory) GetService(context.Context, int64) (*model.Service, error) {
	return nil, apperrors.NotFound("service", nil)
}

func (s *stubDirectory) ListServicesByLocation(context.Context, int64) ([]*model.Service, error) {
	return []*model.Service{{ID: 2, Name: "Dermatology"}}, s.err
}

func (s *stubDirectory) GetWhoWeAre(context.Context) ([]*model.WhoWeAre, error) {
	return []*model.WhoWeAre{{Content: "about us"}}, s.err
}

func newEngine(svc *stubDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(&r.RouterGroup)
	NewAPIHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_ByIDArrays(t *testing.T) {
	r := newEngine(&stubDirectory{})

	w := get(r, "/doctors/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Marco","surname":"Rossi","locationId":0,"basicInfo":"","serviceId":0,"isResponsible":false}]`, w.Body.String())

	for _, path := range []string{"/doctors/2", "/doctors/x", "/services/1", "/doctorsbyservice/x"} {
		w = get(r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}

	w = get(r, "/whoweare")
	assert.JSONEq(t, `[{"content":"about us"}]`, w.Body.String())
}

func TestHandler_StoreFailure(t *testing.T) {
	r := newEngine(&stubDirectory{err: errors.New("database is locked")})

	for _, path := range []string{"/doctors", "/doctors/1", "/locations", "/servicesbylocation/1"} {
		w := get(r, path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "Internal server error", path)
		assert.NotContains(t, w.Body.String(), "database is locked", path)
	}
}

func TestAPIHandler(t *testing.T) {
	r := newEngine(&stubDirectory{})

	w := get(r, "/api/v1/doctors/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"surname":"Rossi"`)

	w = get(r, "/api/v1/doctors/7")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "doctor not found")

	w = get(r, "/api/v1/locations/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/v1/locations/1/services")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dermatology")

	w = get(r, "/api/v1/locations/5/services")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/api/v1/services/1/doctors")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/api/v1/services")
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}
