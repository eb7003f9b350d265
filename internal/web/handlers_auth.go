package web

import (
	"errors"
	"net/http"

	"carbook/internal/database"
	"carbook/internal/models"
	"carbook/internal/service"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLoginForm(c *gin.Context) {
	if s.currentSession(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.render(c, http.StatusOK, "login.html", nil)
}

func (s *Server) handleLogin(c *gin.Context) {
	form := parseCredentialsForm(c)

	user, err := s.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		s.addFlash(c, models.FlashDanger, "Invalid email or password.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("authenticate error")
		s.addFlash(c, models.FlashDanger, "Login failed, please try again.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	s.loginSession(c, user)
	s.addFlash(c, models.FlashSuccess, "Welcome back, "+user.Name+".")
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleRegisterForm(c *gin.Context) {
	if s.currentSession(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.render(c, http.StatusOK, "register.html", nil)
}

func (s *Server) handleRegister(c *gin.Context) {
	form := parseCredentialsForm(c)
	if form.Email == "" || form.Name == "" {
		s.addFlash(c, models.FlashDanger, "Email and name are required.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	user, err := s.users.Register(c.Request.Context(), form.Email, form.Name, form.Password)
	switch {
	case errors.Is(err, service.ErrPasswordTooShort):
		s.addFlash(c, models.FlashDanger, "Password is too short.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	case errors.Is(err, database.ErrEmailTaken):
		s.addFlash(c, models.FlashDanger, "This email is already registered.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("register error")
		s.addFlash(c, models.FlashDanger, "Registration failed, please try again.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	s.loginSession(c, user)
	s.addFlash(c, models.FlashSuccess, "Welcome, "+user.Name+".")
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	s.logoutSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleHealthz(c *gin.Context) {
	if s.healthCheck != nil {
		if err := s.healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.cfg.App.Version})
}
