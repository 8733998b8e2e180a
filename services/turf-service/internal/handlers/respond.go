package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
)

const flashCookie = "turf_flash"

// messages are the user-facing texts for errors a caller can act on.
var messages = []struct {
	err error
	msg string
}{
	{domain.ErrSlotBooked, "Slot already booked"},
	{domain.ErrEmailTaken, "User already exists"},
	{domain.ErrInvalidCredentials, "Invalid credentials"},
	{domain.ErrSlotNotFound, "Slot not found"},
	{domain.ErrTurfNotFound, "Turf not found"},
	{domain.ErrBookingNotFound, "Booking not found"},
	{domain.ErrUserNotFound, "User not found"},
	{domain.ErrUnauthorized, "Authentication required"},
	{domain.ErrForbidden, "Admin access required"},
	{domain.ErrUnavailable, "Service temporarily unavailable"},
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	if errors.Is(err, domain.ErrInvalid) {
		return err.Error()
	}
	return "Something went wrong"
}

// fail answers err with its status. Browsers hitting an auth wall are sent to
// the login page instead.
func fail(c *gin.Context, err error) {
	failWith(c, statusFor(err), err)
}

func failWith(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	msg := messageFor(err)
	if middlewares.WantsJSON(c) {
		c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
		return
	}
	if status == http.StatusUnauthorized {
		redirect(c, "/login", msg)
		return
	}
	render(c, status, "error.html", gin.H{"Status": status, "Message": msg})
	c.Abort()
}

// render executes a page template with the caller and any pending flash.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Who"] = middlewares.IdentityFrom(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = takeFlash(c)
	}
	c.HTML(status, page, data)
}

func redirect(c *gin.Context, to, flash string) {
	if flash != "" {
		setFlash(c, flash)
	}
	c.Redirect(http.StatusSeeOther, to)
	c.Abort()
}

func setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
}

func takeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return raw
}

func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
