package directory

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	directoryService "github.com/jwalitptl/clinic-directory/internal/service/directory"
	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
	"github.com/jwalitptl/clinic-directory/pkg/httputil"
)

// APIHandler serves the versioned routes: single objects for by-id lookups,
// 404 when the id is unknown and 400 when it is not an integer.
type APIHandler struct {
	service directoryService.DirectoryServicer
}

func NewAPIHandler(service directoryService.DirectoryServicer) *APIHandler {
	return &APIHandler{service: service}
}

func (h *APIHandler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
	}

	locations := r.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
		locations.GET("/:id/services", h.ListServicesByLocation)
	}

	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.GET("/:id/doctors", h.ListDoctorsByService)
		services.GET("/:id/locations", h.ListLocationsByService)
	}

	r.GET("/whoweare", h.GetWhoWeAre)
}

func (h *APIHandler) ListDoctors(c *gin.Context) {
	respond(c, func(ctx context.Context, _ int64) (interface{}, error) { return h.service.ListDoctors(ctx) }, false)
}

func (h *APIHandler) GetDoctor(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) { return h.service.GetDoctor(ctx, id) }, true)
}

func (h *APIHandler) ListLocations(c *gin.Context) {
	respond(c, func(ctx context.Context, _ int64) (interface{}, error) { return h.service.ListLocations(ctx) }, false)
}

func (h *APIHandler) GetLocation(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) { return h.service.GetLocation(ctx, id) }, true)
}

func (h *APIHandler) ListServices(c *gin.Context) {
	respond(c, func(ctx context.Context, _ int64) (interface{}, error) { return h.service.ListServices(ctx) }, false)
}

func (h *APIHandler) GetService(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) { return h.service.GetService(ctx, id) }, true)
}

func (h *APIHandler) ListDoctorsByService(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) {
		if _, err := h.service.GetService(ctx, id); err != nil {
			return nil, err
		}
		return h.service.ListDoctorsByService(ctx, id)
	}, true)
}

func (h *APIHandler) ListLocationsByService(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) {
		if _, err := h.service.GetService(ctx, id); err != nil {
			return nil, err
		}
		return h.service.ListLocationsByService(ctx, id)
	}, true)
}

func (h *APIHandler) ListServicesByLocation(c *gin.Context) {
	respond(c, func(ctx context.Context, id int64) (interface{}, error) {
		if _, err := h.service.GetLocation(ctx, id); err != nil {
			return nil, err
		}
		return h.service.ListServicesByLocation(ctx, id)
	}, true)
}

func (h *APIHandler) GetWhoWeAre(c *gin.Context) {
	respond(c, func(ctx context.Context, _ int64) (interface{}, error) { return h.service.GetWhoWeAre(ctx) }, false)
}

// respond parses :id when withID is set and renders the lookup in the
// success envelope.
func respond(c *gin.Context, lookup func(context.Context, int64) (interface{}, error), withID bool) {
	var id int64
	if withID {
		var err error
		id, err = strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("id must be an integer", err))
			return
		}
	}

	data, err := lookup(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, data)
}
