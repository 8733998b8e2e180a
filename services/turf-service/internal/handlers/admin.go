package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
)

type AdminHandler struct {
	bookings BookingService
}

func NewAdminHandler(b BookingService) *AdminHandler {
	return &AdminHandler{bookings: b}
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"admin": middlewares.IdentityFrom(c).Email})
		return
	}
	render(c, http.StatusOK, "admin_dashboard.html", nil)
}

// GET /admin/bookings
func (h *AdminHandler) Bookings(c *gin.Context) {
	list, err := h.bookings.AllBookings(c.Request.Context(), middlewares.IdentityFrom(c))
	h.listing(c, "admin_bookings.html", list, err)
}

// GET /admin/upcoming
func (h *AdminHandler) Upcoming(c *gin.Context) {
	list, err := h.bookings.Upcoming(c.Request.Context(), middlewares.IdentityFrom(c))
	h.listing(c, "admin_upcoming.html", list, err)
}

func (h *AdminHandler) listing(c *gin.Context, page string, list []domain.Booking, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"bookings": list})
		return
	}
	render(c, http.StatusOK, page, gin.H{"Bookings": list})
}

// GET|POST /admin/mark-paid/:id
func (h *AdminHandler) MarkPaid(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		fail(c, domain.ErrBookingNotFound)
		return
	}
	if err := h.bookings.MarkPaid(c.Request.Context(), middlewares.IdentityFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking marked as paid"})
		return
	}
	redirect(c, "/admin/bookings", "Booking marked as paid")
}
