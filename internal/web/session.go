package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"carbook/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextSessionKey = "session"

// currentSession returns the session loaded by the middleware, or nil for a
// visitor without a cookie.
func (s *Server) currentSession(c *gin.Context) *models.Session {
	val, ok := c.Get(contextSessionKey)
	if !ok {
		return nil
	}
	sess, _ := val.(*models.Session)
	return sess
}

// ensureSession returns the current session, creating a fresh anonymous one
// (and setting its cookie) when the visitor has none.
func (s *Server) ensureSession(c *gin.Context) *models.Session {
	if sess := s.currentSession(c); sess != nil {
		return sess
	}

	sess := &models.Session{
		ID:         uuid.New().String(),
		CSRFSecret: newCSRFSecret(),
		CreatedAt:  time.Now(),
	}
	c.Set(contextSessionKey, sess)
	s.setSessionCookie(c, sess.ID)
	return sess
}

func (s *Server) saveSession(c *gin.Context, sess *models.Session) {
	if err := s.sessions.SetSession(c.Request.Context(), sess); err != nil {
		s.logger.Error().Err(err).Str("session_id", sess.ID).Msg("save session error")
	}
}

func (s *Server) addFlash(c *gin.Context, level, message string) {
	sess := s.ensureSession(c)
	sess.AddFlash(level, message)
	s.saveSession(c, sess)
}

// loginSession rotates the session ID on privilege change.
func (s *Server) loginSession(c *gin.Context, user *models.User) {
	old := s.currentSession(c)

	sess := &models.Session{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		CSRFSecret: newCSRFSecret(),
		CreatedAt:  time.Now(),
	}
	if old != nil {
		sess.Flashes = old.Flashes
		_ = s.sessions.ClearSession(c.Request.Context(), old.ID)
	}

	c.Set(contextSessionKey, sess)
	s.setSessionCookie(c, sess.ID)
	s.saveSession(c, sess)
}

func (s *Server) logoutSession(c *gin.Context) {
	if sess := s.currentSession(c); sess != nil {
		if err := s.sessions.ClearSession(c.Request.Context(), sess.ID); err != nil {
			s.logger.Error().Err(err).Str("session_id", sess.ID).Msg("clear session error")
		}
	}
	c.Set(contextSessionKey, (*models.Session)(nil))
	s.setSessionCookie(c, "")
}

func (s *Server) setSessionCookie(c *gin.Context, id string) {
	maxAge := s.cfg.Session.TTLSeconds
	if id == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.Session.CookieName, id, maxAge, "/", "", s.cfg.Session.Secure, true)
}

func newCSRFSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the platform entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
