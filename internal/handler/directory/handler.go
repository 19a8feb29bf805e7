package directory

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	directoryService "github.com/jwalitptl/clinic-directory/internal/service/directory"
	apperrors "github.com/jwalitptl/clinic-directory/pkg/errors"
	"github.com/jwalitptl/clinic-directory/pkg/httputil"
)

// Handler serves the root routes. Every response is a JSON array: by-id
// lookups yield zero or one element and an unknown or malformed id is an
// empty array, never an error.
type Handler struct {
	service directoryService.DirectoryServicer
}

func NewHandler(service directoryService.DirectoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
	r.GET("/doctors/:id", h.GetDoctor)
	r.GET("/locations", h.ListLocations)
	r.GET("/locations/:id", h.GetLocation)
	r.GET("/services", h.ListServices)
	r.GET("/services/:id", h.GetService)
	r.GET("/doctorsbyservice/:id", h.ListDoctorsByService)
	r.GET("/servicesbylocation/:id", h.ListServicesByLocation)
	r.GET("/locationsbyservice/:id", h.ListLocationsByService)
	r.GET("/whoweare", h.GetWhoWeAre)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	respondList(c, h.service.ListDoctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	respondOne(c, h.service.GetDoctor)
}

func (h *Handler) ListLocations(c *gin.Context) {
	respondList(c, h.service.ListLocations)
}

func (h *Handler) GetLocation(c *gin.Context) {
	respondOne(c, h.service.GetLocation)
}

func (h *Handler) ListServices(c *gin.Context) {
	respondList(c, h.service.ListServices)
}

func (h *Handler) GetService(c *gin.Context) {
	respondOne(c, h.service.GetService)
}

func (h *Handler) ListDoctorsByService(c *gin.Context) {
	respondListByID(c, h.service.ListDoctorsByService)
}

func (h *Handler) ListServicesByLocation(c *gin.Context) {
	respondListByID(c, h.service.ListServicesByLocation)
}

func (h *Handler) ListLocationsByService(c *gin.Context) {
	respondListByID(c, h.service.ListLocationsByService)
}

func (h *Handler) GetWhoWeAre(c *gin.Context) {
	respondList(c, h.service.GetWhoWeAre)
}

func respondList[T any](c *gin.Context, list func(context.Context) ([]*T, error)) {
	items, err := list(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func respondListByID[T any](c *gin.Context, list func(context.Context, int64) ([]*T, error)) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusOK, []*T{})
		return
	}
	items, err := list(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func respondOne[T any](c *gin.Context, get func(context.Context, int64) (*T, error)) {
	items := []*T{}

	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusOK, items)
		return
	}

	item, err := get(c.Request.Context(), id)
	switch {
	case apperrors.IsNotFound(err):
	case err != nil:
		httputil.RespondWithError(c, err)
		return
	default:
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}
