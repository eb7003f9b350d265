package web

import (
	"carbook/internal/models"

	"github.com/gin-gonic/gin"
)

// render draws a template with the shared page context: current user info and
// drained flash messages.
func (s *Server) render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	sess := s.currentSession(c)
	if sess != nil {
		if flashes := sess.TakeFlashes(); len(flashes) > 0 {
			data["Flashes"] = flashes
			s.saveSession(c, sess)
		}
		data["Authenticated"] = sess.Authenticated()
		data["UserEmail"] = sess.Email
		data["IsAdmin"] = sess.Role == models.RoleAdmin
	} else {
		data["Authenticated"] = false
		data["IsAdmin"] = false
	}
	data["AppName"] = s.cfg.App.Name

	c.HTML(status, template, data)
}
