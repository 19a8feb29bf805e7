package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-directory/internal/middleware"
	"github.com/jwalitptl/clinic-directory/internal/model"
	contactService "github.com/jwalitptl/clinic-directory/internal/service/contact"
)

// Reply is the fixed body returned for every submission.
const Reply = "thanks"

type Handler struct {
	service contactService.ContactServicer
}

func NewHandler(service contactService.ContactServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contactForm", h.Submit)
}

// Submit relays the form by mail. The caller always gets 200 and Reply:
// an invalid form is dropped and a relay failure is only logged.
func (h *Handler) Submit(c *gin.Context) {
	var msg model.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		log.Warn().
			Err(err).
			Interface("fields", middleware.DescribeValidation(err)).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Msg("contact form rejected")
		c.String(http.StatusOK, Reply)
		return
	}

	_ = h.service.Relay(c.Request.Context(), &msg)
	c.String(http.StatusOK, Reply)
}
