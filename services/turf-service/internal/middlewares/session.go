package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/turf-booking/pkg/auth"
	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const (
	SessionCookie = "turf_session"
	identityKey   = "identity"
)

// Session resolves the caller from the session cookie or a Bearer header.
// A missing or invalid token leaves the caller anonymous; routes that need
// a user are guarded by RequireAuth.
func Session(s *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, _ := c.Cookie(SessionCookie)
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tok = strings.TrimPrefix(h, "Bearer ")
		}
		if tok != "" {
			if claims, err := s.Parse(tok); err == nil {
				if id, err := strconv.ParseUint(claims.Sub, 10, 64); err == nil && id > 0 {
					c.Set(identityKey, domain.Identity{
						UserID:  uint(id),
						Email:   claims.Email,
						IsAdmin: claims.Role == auth.RoleAdmin,
					})
				}
			}
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) domain.Identity {
	v, _ := c.Get(identityKey)
	who, _ := v.(domain.Identity)
	return who
}

// RequireAuth stops anonymous callers: 401 for API clients, a redirect to
// the login page for browsers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).Authenticated() {
			c.Next()
			return
		}
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).IsAdmin {
			c.Next()
			return
		}
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		c.HTML(http.StatusForbidden, "error.html", gin.H{"Status": http.StatusForbidden, "Message": "Admin access required", "Who": IdentityFrom(c)})
		c.Abort()
	}
}
