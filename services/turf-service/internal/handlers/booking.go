package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
)

type BookingHandler struct {
	bookings BookingService
	turfs    TurfService
}

func NewBookingHandler(b BookingService, t TurfService) *BookingHandler {
	return &BookingHandler{bookings: b, turfs: t}
}

// GET /book/:slotId
func (h *BookingHandler) Form(c *gin.Context) {
	id, ok := idParam(c, "slotId")
	if !ok {
		fail(c, domain.ErrSlotNotFound)
		return
	}
	slot, err := h.turfs.Slot(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"slot": gin.H{
			"id":         slot.ID,
			"turf_id":    slot.TurfID,
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
			"is_booked":  slot.IsBooked,
		}})
		return
	}
	turf, err := h.turfs.Get(c.Request.Context(), slot.TurfID)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "book.html", gin.H{"Slot": slot, "Turf": turf})
}

// POST /book/:slotId
func (h *BookingHandler) Book(c *gin.Context) {
	who := middlewares.IdentityFrom(c)
	if !who.Authenticated() {
		fail(c, domain.ErrUnauthorized)
		return
	}
	id, ok := idParam(c, "slotId")
	if !ok {
		fail(c, domain.ErrSlotNotFound)
		return
	}
	b, err := h.bookings.Book(c.Request.Context(), who, id)
	if err != nil {
		if !middlewares.WantsJSON(c) && statusFor(err) == http.StatusConflict {
			redirect(c, c.Request.URL.Path, messageFor(err))
			return
		}
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking confirmed", "booking": b})
		return
	}
	redirect(c, "/user/dashboard", "Booking confirmed")
}

// GET /user/dashboard
func (h *BookingHandler) Dashboard(c *gin.Context) {
	bookings, err := h.bookings.UserBookings(c.Request.Context(), middlewares.IdentityFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
		return
	}
	render(c, http.StatusOK, "user_dashboard.html", gin.H{"Bookings": bookings})
}
