package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/pkg/auth"
	"github.com/you/turf-booking/services/turf-service/internal/domain"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
)

type AuthHandler struct {
	accounts     AuthService
	sessions     *auth.Sessions
	secureCookie bool
}

func NewAuthHandler(a AuthService, s *auth.Sessions, secureCookie bool) *AuthHandler {
	return &AuthHandler{accounts: a, sessions: s, secureCookie: secureCookie}
}

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type userView struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func viewOf(u *domain.User) userView {
	return userView{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Email": ""})
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		failWith(c, http.StatusBadRequest, domain.ErrInvalid)
		return
	}
	u, err := h.accounts.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if middlewares.WantsJSON(c) || !errors.Is(err, domain.ErrUnauthorized) {
			fail(c, err)
			return
		}
		render(c, http.StatusUnauthorized, "login.html", gin.H{"Flash": messageFor(err), "Email": in.Email})
		return
	}
	if err := h.startSession(c, u); err != nil {
		fail(c, err)
		return
	}
	logrus.WithField("user_id", u.ID).Info("user logged in")
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "user": viewOf(u)})
		return
	}
	if u.IsAdmin {
		redirect(c, "/admin/dashboard", "")
		return
	}
	redirect(c, "/user/dashboard", "")
}

// GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Email": ""})
}

// POST /register. A taken email is a 400 like any other bad form.
func (h *AuthHandler) Register(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		failWith(c, http.StatusBadRequest, domain.ErrInvalid)
		return
	}
	_, err := h.accounts.Register(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, domain.ErrEmailTaken) {
			status = http.StatusBadRequest
		}
		if middlewares.WantsJSON(c) || status >= http.StatusInternalServerError {
			failWith(c, status, err)
			return
		}
		render(c, status, "register.html", gin.H{"Flash": messageFor(err), "Email": in.Email})
		return
	}
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration successful"})
		return
	}
	redirect(c, "/login", "Registration successful! Please login.")
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	if middlewares.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	redirect(c, "/", "Logged out")
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	who := middlewares.IdentityFrom(c)
	if !who.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"user": nil})
		return
	}
	u, err := h.accounts.User(c.Request.Context(), who.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"user": nil})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOf(u)})
}

func (h *AuthHandler) startSession(c *gin.Context, u *domain.User) error {
	role := auth.RoleUser
	if u.IsAdmin {
		role = auth.RoleAdmin
	}
	tok, err := h.sessions.Issue(strconv.FormatUint(uint64(u.ID), 10), role, u.Email)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, tok, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)
	return nil
}
