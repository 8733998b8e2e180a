package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
)

type TurfHandler struct {
	turfs TurfService
}

func NewTurfHandler(t TurfService) *TurfHandler {
	return &TurfHandler{turfs: t}
}

// GET /
func (h *TurfHandler) Home(c *gin.Context) {
	turfs, err := h.turfs.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"turfs": turfs})
		return
	}
	render(c, http.StatusOK, "home.html", gin.H{"Turfs": turfs})
}

// GET /turf/:id
func (h *TurfHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		fail(c, domain.ErrTurfNotFound)
		return
	}
	turf, err := h.turfs.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"turf": turf})
		return
	}
	slots, err := h.turfs.Slots(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "turf.html", gin.H{"Turf": turf, "Slots": slots})
}

// GET /turf/:id/slots. Unknown turfs have no slots.
func (h *TurfHandler) Slots(c *gin.Context) {
	id, _ := idParam(c, "id")
	slots, err := h.turfs.Slots(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
